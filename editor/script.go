package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByLCY/vitae/dsl"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
)

// Output 接收脚本中 render 与 debug 命令的结果。
type Output interface {
	Render(path string, plan *layout.Plan) error
	Debug(path string, plan *layout.Plan) error
}

// FileOutput 把 PDF 与调试 JSON 写入文件。
type FileOutput struct {
	Renderer renderer.Renderer
	// BaseDir 用于解析相对路径，空值表示当前目录。
	BaseDir string
}

// Render 实现 Output。
func (o FileOutput) Render(path string, plan *layout.Plan) error {
	if o.Renderer == nil {
		return fmt.Errorf("未配置渲染器")
	}
	data, err := o.Renderer.Render(plan)
	if err != nil {
		return err
	}
	path = o.resolve(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Debug 实现 Output。
func (o FileOutput) Debug(path string, plan *layout.Plan) error {
	path = o.resolve(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return layout.WriteDebugJSON(plan, path)
}

func (o FileOutput) resolve(path string) string {
	if o.BaseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.BaseDir, path)
}

// Exec 按顺序执行编辑脚本。遇到错误时立即停止，并报告出错命令的位置；
// 之前的命令已生效，出错命令本身按常规规则回滚。
func (e *Editor) Exec(script *dsl.Script, out Output) error {
	if script == nil {
		return nil
	}
	for _, cmd := range script.Commands {
		if err := e.exec(cmd, out); err != nil {
			return fmt.Errorf("第 %d 行 %s 命令失败: %w", cmd.Pos.Line, cmd.Name(), err)
		}
	}
	return nil
}

func (e *Editor) exec(cmd *dsl.Command, out Output) error {
	var err error
	switch {
	case cmd.Order != nil:
		_, err = e.Reorder(cmd.Order.IDs()...)
	case cmd.Move != nil:
		id := cmd.Move.Section.String()
		switch {
		case cmd.Move.Up:
			_, err = e.MoveUp(id)
		case cmd.Move.Down:
			_, err = e.MoveDown(id)
		case cmd.Move.To != nil:
			_, err = e.MoveSection(id, *cmd.Move.To)
		}
	case cmd.Hide != nil:
		_, err = e.SetHidden(cmd.Hide.Section.String(), true)
	case cmd.Show != nil:
		_, err = e.SetHidden(cmd.Show.Section.String(), false)
	case cmd.Mode != nil:
		if cmd.Mode.Manual() {
			_, err = e.EnterManual()
		} else {
			_, err = e.EnterAutomatic()
		}
	case cmd.Pages != nil:
		_, err = e.SetTargetPages(cmd.Pages.Count)
	case cmd.Pin != nil:
		_, err = e.PinSection(cmd.Pin.Section.String(), cmd.Pin.Page)
	case cmd.Text != nil:
		switch {
		case cmd.Text.Shrink:
			_, err = e.ShrinkText()
		case cmd.Text.Grow:
			_, err = e.GrowText()
		case cmd.Text.Reset:
			_, err = e.ResetText()
		case cmd.Text.Percent != nil:
			_, err = e.SetTextScale(*cmd.Text.Percent)
		}
	case cmd.Fit != nil:
		_, err = e.FitToOnePage()
	case cmd.Render != nil, cmd.Debug != nil:
		if out == nil {
			return fmt.Errorf("未配置输出")
		}
		if e.plan == nil {
			if _, err := e.Refresh(); err != nil {
				return err
			}
		}
		if cmd.Render != nil {
			err = out.Render(string(cmd.Render.Path), e.plan)
		} else {
			err = out.Debug(string(cmd.Debug.Path), e.plan)
		}
	default:
		err = fmt.Errorf("未知命令")
	}
	return err
}
