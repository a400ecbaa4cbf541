package canvasrenderer

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/vitae/fonts"
)

// FontSources 指定四种字形的来源，可为 "embed:<name>" 或字体文件路径。
type FontSources struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// DefaultFonts 返回内置的 Go 字体族。
func DefaultFonts() FontSources {
	return FontSources{
		Regular:    "embed:" + fonts.Regular,
		Bold:       "embed:" + fonts.Bold,
		Italic:     "embed:" + fonts.Italic,
		BoldItalic: "embed:" + fonts.BoldItalic,
	}
}

func (s FontSources) withDefaults() FontSources {
	def := DefaultFonts()
	if s.Regular == "" {
		s.Regular = def.Regular
	}
	if s.Bold == "" {
		s.Bold = def.Bold
	}
	if s.Italic == "" {
		s.Italic = def.Italic
	}
	if s.BoldItalic == "" {
		s.BoldItalic = def.BoldItalic
	}
	return s
}

// fontCache 懒加载字体族并缓存字体面，按 (字形, 字号) 索引。
type fontCache struct {
	mu      sync.Mutex
	sources FontSources
	family  *canvas.FontFamily
	faces   map[faceKey]*canvas.FontFace
}

type faceKey struct {
	style canvas.FontStyle
	size  float64
}

var textColor color.Color = canvas.RGBA(30.0/255.0, 30.0/255.0, 30.0/255.0, 1.0)

func newFontCache(src FontSources) *fontCache {
	return &fontCache{sources: src.withDefaults(), faces: map[faceKey]*canvas.FontFace{}}
}

// face 返回指定字形与字号（pt）的字体面。
func (c *fontCache) face(style canvas.FontStyle, sizePt float64) (*canvas.FontFace, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := faceKey{style: style, size: sizePt}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	if c.family == nil {
		family, err := c.loadFamily()
		if err != nil {
			return nil, err
		}
		c.family = family
	}
	f := c.family.Face(sizePt, textColor, style, canvas.FontNormal)
	c.faces[key] = f
	return f, nil
}

func (c *fontCache) loadFamily() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("vitae")
	for _, entry := range []struct {
		src   string
		style canvas.FontStyle
	}{
		{c.sources.Regular, canvas.FontRegular},
		{c.sources.Bold, canvas.FontBold},
		{c.sources.Italic, canvas.FontRegular | canvas.FontItalic},
		{c.sources.BoldItalic, canvas.FontBold | canvas.FontItalic},
	} {
		data, err := fonts.Load(entry.src)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, entry.style); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", entry.src, err)
		}
	}
	return family, nil
}
