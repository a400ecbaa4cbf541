package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/vitae/config"
	"github.com/ByLCY/vitae/dsl"
	"github.com/ByLCY/vitae/editor"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
	canvasrenderer "github.com/ByLCY/vitae/renderer/canvas"
	"github.com/ByLCY/vitae/resume"
)

// layoutFlags 对应界面上的布局控件。
type layoutFlags struct {
	input string
	order []string
	hide  []string
	mode  string
	pages int
	pins  map[string]int
	text  int
	fit   bool
	debug string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "in", "i", "resume.yaml", "YAML 简历路径")
	cmd.Flags().StringSliceVar(&f.order, "order", nil, "段落顺序，例如 skills,work_experience")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "隐藏的段落")
	cmd.Flags().StringVar(&f.mode, "mode", "auto", "分页模式：auto 或 manual")
	cmd.Flags().IntVar(&f.pages, "pages", 0, "手动模式的目标页数")
	cmd.Flags().StringToIntVar(&f.pins, "pin", nil, "把段落钉到指定页，例如 education=2")
	cmd.Flags().IntVar(&f.text, "text", 100, "文字缩放百分比")
	cmd.Flags().BoolVar(&f.fit, "fit", false, "缩放文字使全部内容放入一页")
	cmd.Flags().StringVar(&f.debug, "debug", "", "分页调试 JSON 输出路径")
}

// session 串联配置、测量后端与编辑器。
type session struct {
	cfg      config.Config
	renderer *canvasrenderer.Renderer
	editor   *editor.Editor
	logger   *log.Logger
}

func newSession(cmd *cobra.Command, configPath string) (*session, error) {
	logger := loggerFromContext(cmd.Context())
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Geometry: cfg.Page,
		Fonts: canvasrenderer.FontSources{
			Regular:    cfg.Fonts.Regular,
			Bold:       cfg.Fonts.Bold,
			Italic:     cfg.Fonts.Italic,
			BoldItalic: cfg.Fonts.BoldItalic,
		},
	})
	ed := editor.New(r, editor.Options{
		Geometry: cfg.Page,
		Limits: editor.Limits{
			TextMin:  cfg.Text.Min,
			TextMax:  cfg.Text.Max,
			TextStep: cfg.Text.Step,
			PagesMin: cfg.Pages.Min,
			PagesMax: cfg.Pages.Max,
		},
		Meta: layout.Meta{
			Title:    cfg.Meta.Title,
			Author:   cfg.Meta.Author,
			Subject:  cfg.Meta.Subject,
			Creator:  cfg.Meta.Creator,
			Keywords: cfg.Meta.Keywords,
		},
		Logger: logger,
	})
	return &session{cfg: cfg, renderer: r, editor: ed, logger: logger}, nil
}

func (s *session) load(path string) error {
	doc, err := resume.Load(path)
	if err != nil {
		return err
	}
	_, err = s.editor.Load(doc)
	return err
}

// apply 按界面操作的顺序应用布局参数：顺序、可见性、文字、模式、页数、钉选、单页适配。
func (s *session) apply(f *layoutFlags) (*layout.Plan, error) {
	e := s.editor
	if len(f.order) > 0 {
		if _, err := e.Reorder(f.order...); err != nil {
			return nil, err
		}
	}
	for _, id := range f.hide {
		if _, err := e.SetHidden(id, true); err != nil {
			return nil, err
		}
	}
	if f.text != 100 {
		if _, err := e.SetTextScale(f.text); err != nil {
			return nil, err
		}
	}
	switch f.mode {
	case "", "auto":
		if f.pages > 0 || len(f.pins) > 0 {
			return nil, fmt.Errorf("--pages 与 --pin 需要 --mode manual")
		}
	case "manual":
		if _, err := e.EnterManual(); err != nil {
			return nil, err
		}
		if f.pages > 0 {
			if _, err := e.SetTargetPages(f.pages); err != nil {
				return nil, err
			}
		}
		ids := make([]string, 0, len(f.pins))
		for id := range f.pins {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if _, err := e.PinSection(id, f.pins[id]); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("未知的分页模式 %q", f.mode)
	}
	if f.fit {
		return e.FitToOnePage()
	}
	return e.Plan(), nil
}

func writeDebug(plan *layout.Plan, path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(plan, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func newRenderCmd(configPath *string) *cobra.Command {
	var flags layoutFlags
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "排版简历并输出 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			return runRender(s, &flags, output)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "output/resume.pdf", "PDF 输出路径")
	return cmd
}

// runRender 串联加载、布局与渲染。
func runRender(s *session, flags *layoutFlags, output string) error {
	if err := s.load(flags.input); err != nil {
		return err
	}
	plan, err := s.apply(flags)
	if err != nil {
		return err
	}
	if err := writeDebug(plan, flags.debug); err != nil {
		return err
	}

	pdfBytes, err := s.renderer.Render(plan)
	if errors.Is(err, renderer.ErrEmptyPlan) {
		s.logger.Warn("简历没有可渲染的内容", "input", flags.input)
		return nil
	}
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	if plan.Overflowed {
		s.logger.Warn("内容超出目标页数", "pages", len(plan.Pages), "target", plan.TargetPages)
	}
	s.logger.Info("已生成 PDF", "path", output, "pages", len(plan.Pages))
	return nil
}

func newPlanCmd(configPath *string) *cobra.Command {
	var flags layoutFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "打印分页结果而不输出 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			if err := s.load(flags.input); err != nil {
				return err
			}
			plan, err := s.apply(&flags)
			if err != nil {
				return err
			}
			if err := writeDebug(plan, flags.debug); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatPlan(plan, s.editor.State().Order))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newScriptCmd(configPath *string) *cobra.Command {
	var input, scriptPath string
	cmd := &cobra.Command{
		Use:   "script",
		Short: "对简历执行编辑脚本",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			if err := s.load(input); err != nil {
				return err
			}
			file, err := os.Open(scriptPath)
			if err != nil {
				return fmt.Errorf("无法打开脚本 %s: %w", scriptPath, err)
			}
			defer file.Close()

			script, err := dsl.Parse(file)
			if err != nil {
				return fmt.Errorf("解析脚本失败: %w", err)
			}
			out := editor.FileOutput{Renderer: s.renderer, BaseDir: filepath.Dir(scriptPath)}
			if err := s.editor.Exec(script, out); err != nil {
				return err
			}
			s.logger.Info("脚本执行完成", "commands", len(script.Commands))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "resume.yaml", "YAML 简历路径")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "编辑脚本路径")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func newExampleCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "输出示例简历 YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := resume.Marshal(resume.Example())
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "输出路径，默认写到标准输出")
	return cmd
}
