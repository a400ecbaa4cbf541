// Package config loads the optional TOML configuration of vitae.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/ByLCY/vitae/layout"
)

// Config is the complete runtime configuration.
type Config struct {
	Page  layout.Geometry `toml:"page"`
	Text  Text            `toml:"text"`
	Pages Pages           `toml:"pages"`
	Meta  Meta            `toml:"meta"`
	Fonts Fonts           `toml:"fonts"`
}

// Text bounds the text scale control, in percent.
type Text struct {
	Min  int `toml:"min" validate:"gte=10,lte=100"`
	Max  int `toml:"max" validate:"gtefield=Min,lte=200"`
	Step int `toml:"step" validate:"gte=1,lte=50"`
}

// Pages bounds the manual-mode target page count.
type Pages struct {
	Min int `toml:"min" validate:"gte=1"`
	Max int `toml:"max" validate:"gtefield=Min,lte=20"`
}

// Meta holds PDF metadata templates. Values may reference the résumé
// with ${path|fallback} placeholders.
type Meta struct {
	Title    string   `toml:"title"`
	Author   string   `toml:"author"`
	Subject  string   `toml:"subject"`
	Creator  string   `toml:"creator"`
	Keywords []string `toml:"keywords"`
}

// Fonts lists font sources: "embed:<name>" or a file path.
type Fonts struct {
	Regular    string `toml:"regular"`
	Bold       string `toml:"bold"`
	Italic     string `toml:"italic"`
	BoldItalic string `toml:"bold_italic"`
}

// Default returns the built-in configuration: US Letter, text 50–100%, 1–3 pages.
func Default() Config {
	return Config{
		Page:  layout.Letter(),
		Text:  Text{Min: 50, Max: 100, Step: 5},
		Pages: Pages{Min: 1, Max: 3},
		Meta: Meta{
			Title:   "${name|Résumé} - Résumé",
			Author:  "${name}",
			Subject: "Résumé",
			Creator: "vitae",
		},
	}
}

// Load reads a TOML file on top of the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("配置 %s 含未知字段: %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("配置 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("配置含未知字段: %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field bounds and page geometry.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	var errs []error
	if c.Page.Width.ToPX() <= 0 || c.Page.Height.ToPX() <= 0 {
		errs = append(errs, errors.New("页面宽高必须为正数"))
	}
	if c.Page.UsableHeight() <= 0 {
		errs = append(errs, errors.New("上下边距超过页面高度"))
	}
	if c.Page.ContentWidth() <= 0 {
		errs = append(errs, errors.New("左右边距超过页面宽度"))
	}
	if c.Text.Max-c.Text.Min < 0 || (c.Text.Max-c.Text.Min)%c.Text.Step != 0 {
		errs = append(errs, fmt.Errorf("文字缩放区间 %d-%d 不是步长 %d 的整数倍", c.Text.Min, c.Text.Max, c.Text.Step))
	}
	return errors.Join(errs...)
}
