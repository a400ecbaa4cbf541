package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称。
const (
	Regular    = "Go-Regular"
	Bold       = "Go-Bold"
	Italic     = "Go-Italic"
	BoldItalic = "Go-BoldItalic"
)

var builtin = map[string][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
}

// Names 返回所有内置字体名称。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Load 返回字体的字节数据。src 可写为 "embed:Go-Bold"（内置字体）或字体文件路径。
func Load(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体来源为空")
	}
	if name, ok := strings.CutPrefix(src, "embed:"); ok {
		data, found := builtin[strings.TrimSuffix(name, ".ttf")]
		if !found {
			return nil, fmt.Errorf("找不到内置字体 %s", name)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", src, err)
	}
	return data, nil
}
