// Package editor 持有一次编辑会话的布局状态，并在每次修改后同步重跑
// 收集 → 测量 → 分页 流水线。
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/vitae/binding"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/resume"
)

var (
	// ErrNoDocument 表示尚未加载文档。
	ErrNoDocument = errors.New("尚未加载简历")
	// ErrNotManual 表示操作只在手动模式下可用。
	ErrNotManual = errors.New("该操作仅在手动分页模式下可用")
	// ErrUnknownSection 表示段落标识不存在。
	ErrUnknownSection = errors.New("未知的段落")
)

// Options 配置编辑器。零值可用：Letter 页面、默认限制、丢弃日志。
type Options struct {
	Geometry layout.Geometry
	Limits   Limits
	Meta     layout.Meta
	Logger   *log.Logger
}

// Run 是纯粹的流水线：按状态收集内容块，提交给测量后端，再按模式分页。
// 测量结果只能通过 Commit 返回的 Flow 读取，因此读取高度总在提交之后。
func Run(doc *resume.Document, st State, m layout.Measurer, geo layout.Geometry) (*layout.Plan, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if m == nil {
		return nil, fmt.Errorf("缺少测量后端 Measurer")
	}
	groups := layout.Collect(doc, st.Order)
	flow, err := m.Commit(layout.Blocks(groups), st.Scale())
	if err != nil {
		return nil, fmt.Errorf("测量内容失败: %w", err)
	}

	usable := geo.UsableHeight()
	var plan *layout.Plan
	if st.Mode == layout.Manual {
		plan = layout.PaginateManual(groups, flow, usable, st.TargetPages, st.Pins)
	} else {
		plan = layout.PaginateAuto(groups, flow, usable)
	}
	plan.Scale = st.Scale()
	plan.Geometry = geo
	return plan, nil
}

// Editor 持有一个文档、它的布局状态与最近一次的分页结果。
// 每个修改操作都会先生成新状态，再同步重跑流水线；流水线失败时状态与结果保持原样。
// Editor 不是并发安全的，应由单一调用方驱动。
type Editor struct {
	measurer layout.Measurer
	opts     Options
	log      *log.Logger

	doc   *resume.Document
	state State
	plan  *layout.Plan
}

// New 创建编辑器。
func New(m layout.Measurer, opts Options) *Editor {
	if opts.Geometry.Width.IsZero() || opts.Geometry.Height.IsZero() {
		opts.Geometry = layout.Letter()
	}
	opts.Limits = opts.Limits.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Editor{
		measurer: m,
		opts:     opts,
		log:      logger,
		state:    NewState(opts.Limits),
	}
}

// State 返回当前状态的副本。
func (e *Editor) State() State { return e.state.Clone() }

// Plan 返回最近一次的分页结果。
func (e *Editor) Plan() *layout.Plan { return e.plan }

// Document 返回当前文档。
func (e *Editor) Document() *resume.Document { return e.doc }

// Limits 返回生效的控件范围。
func (e *Editor) Limits() Limits { return e.opts.Limits }

// Load 载入新文档，并把段落顺序、模式、钉选与文字缩放一并重置。
func (e *Editor) Load(doc *resume.Document) (*layout.Plan, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	prevDoc := e.doc
	e.doc = doc
	plan, err := e.apply("load", func(State) (State, error) {
		return NewState(e.opts.Limits), nil
	})
	if err != nil {
		e.doc = prevDoc
		return nil, err
	}
	return plan, nil
}

// Refresh 以当前状态重跑流水线。
func (e *Editor) Refresh() (*layout.Plan, error) {
	return e.apply("refresh", func(s State) (State, error) { return s, nil })
}

// Reorder 按给定顺序重新排列段落，未列出的段落保持相对顺序排在后面。
func (e *Editor) Reorder(ids ...string) (*layout.Plan, error) {
	return e.apply("reorder", func(s State) (State, error) {
		order, ok := s.Order.Reorder(ids)
		if !ok {
			return s, fmt.Errorf("%w: %v", ErrUnknownSection, ids)
		}
		s.Order = order
		return s, nil
	})
}

// MoveSection 把段落移动到第 position 位（从 1 开始）。
func (e *Editor) MoveSection(id string, position int) (*layout.Plan, error) {
	return e.apply("move", func(s State) (State, error) {
		order, ok := s.Order.Move(id, position-1)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		s.Order = order
		return s, nil
	})
}

// MoveUp 把段落前移一位。
func (e *Editor) MoveUp(id string) (*layout.Plan, error) {
	return e.apply("move-up", func(s State) (State, error) {
		order, ok := s.Order.MoveUp(id)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		s.Order = order
		return s, nil
	})
}

// MoveDown 把段落后移一位。
func (e *Editor) MoveDown(id string) (*layout.Plan, error) {
	return e.apply("move-down", func(s State) (State, error) {
		order, ok := s.Order.MoveDown(id)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		s.Order = order
		return s, nil
	})
}

// SetHidden 隐藏或显示段落。
func (e *Editor) SetHidden(id string, hidden bool) (*layout.Plan, error) {
	return e.apply("visibility", func(s State) (State, error) {
		order, ok := s.Order.WithHidden(id, hidden)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		s.Order = order
		return s, nil
	})
}

// EnterManual 切换到手动分页，冻结当前位置。
func (e *Editor) EnterManual() (*layout.Plan, error) {
	return e.apply("mode-manual", func(s State) (State, error) {
		return s.EnterManual(e.opts.Limits), nil
	})
}

// EnterAutomatic 切换回自动分页。
func (e *Editor) EnterAutomatic() (*layout.Plan, error) {
	return e.apply("mode-auto", func(s State) (State, error) {
		return s.EnterAutomatic(), nil
	})
}

// SetTargetPages 修改手动模式的目标页数，并清空钉选重新分配。
func (e *Editor) SetTargetPages(n int) (*layout.Plan, error) {
	return e.apply("pages", func(s State) (State, error) {
		return s.WithTargetPages(n, e.opts.Limits)
	})
}

// PinSection 把段落（或独立条目）钉到第 page 页。
func (e *Editor) PinSection(id string, page int) (*layout.Plan, error) {
	return e.apply("pin", func(s State) (State, error) {
		if !e.knows(s, id) {
			return s, fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		return s.WithPin(id, page)
	})
}

// ShrinkText 把文字缩小一个步长。
func (e *Editor) ShrinkText() (*layout.Plan, error) {
	return e.apply("text-shrink", func(s State) (State, error) {
		return s.ShiftText(-1, e.opts.Limits), nil
	})
}

// GrowText 把文字放大一个步长。
func (e *Editor) GrowText() (*layout.Plan, error) {
	return e.apply("text-grow", func(s State) (State, error) {
		return s.ShiftText(1, e.opts.Limits), nil
	})
}

// ResetText 把文字恢复到 100%（收敛到允许范围）。
func (e *Editor) ResetText() (*layout.Plan, error) {
	return e.SetTextScale(100)
}

// SetTextScale 设置文字缩放百分比。
func (e *Editor) SetTextScale(pct int) (*layout.Plan, error) {
	return e.apply("text", func(s State) (State, error) {
		return s.WithTextScale(pct, e.opts.Limits), nil
	})
}

// FitToOnePage 把全部内容放在一页上，并用二分搜索找出能放下的最大缩放。
// 结果成为当前分页结果，但不修改文字缩放状态。
func (e *Editor) FitToOnePage() (*layout.Plan, error) {
	if e.doc == nil {
		return nil, ErrNoDocument
	}
	groups := layout.Collect(e.doc, e.state.Order)
	column := &layout.Column{Measurer: e.measurer, Blocks: layout.Blocks(groups)}
	scale, err := layout.FitScale(column, e.opts.Geometry.UsableHeight(), layout.FitOptions{})
	if err != nil {
		return nil, fmt.Errorf("单页适配失败: %w", err)
	}

	plan := &layout.Plan{
		Assignment: layout.Assignment{},
		Mode:       layout.Automatic,
		Scale:      scale,
		Geometry:   e.opts.Geometry,
	}
	if len(groups) > 0 {
		plan.Pages = []layout.Page{{Number: 1, Groups: groups}}
		for _, g := range groups {
			if _, ok := plan.Assignment[g.Section]; !ok {
				plan.Assignment[g.Section] = 1
			}
		}
	}
	plan.Meta = e.meta()
	e.plan = plan
	e.log.Debug("单页适配完成", "scale", fmt.Sprintf("%.3f", scale), "groups", len(groups))
	return plan, nil
}

// apply 生成新状态并重跑流水线；任一步失败时保持原状态与原结果。
func (e *Editor) apply(action string, mutate func(State) (State, error)) (*layout.Plan, error) {
	if e.doc == nil {
		return nil, ErrNoDocument
	}
	next, err := mutate(e.state.Clone())
	if err != nil {
		return nil, err
	}
	plan, err := Run(e.doc, next, e.measurer, e.opts.Geometry)
	if err != nil {
		e.log.Error("布局失败，已回滚", "action", action, "err", err)
		return nil, err
	}
	plan.Meta = e.meta()

	e.state = next.Observe(plan)
	e.plan = plan
	e.log.Debug("布局完成",
		"action", action,
		"mode", plan.Mode,
		"pages", len(plan.Pages),
		"target", plan.TargetPages,
		"scale", plan.Scale,
	)
	if plan.Overflowed {
		e.log.Warn("内容超出目标页数", "pages", len(plan.Pages), "target", plan.TargetPages)
	}
	return plan, nil
}

// knows 报告 id 是否为当前文档中的段落或独立条目标识。
func (e *Editor) knows(s State, id string) bool {
	if s.Order.Index(id) >= 0 || id == layout.HeaderSection {
		return true
	}
	for _, it := range e.doc.Additional {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (e *Editor) meta() layout.Meta {
	m := e.opts.Meta
	tree, err := binding.Tree(e.doc)
	if err != nil {
		e.log.Warn("无法生成元信息绑定数据", "err", err)
		return m
	}
	out := layout.Meta{
		Title:   binding.Interpolate(m.Title, tree),
		Author:  binding.Interpolate(m.Author, tree),
		Subject: binding.Interpolate(m.Subject, tree),
		Creator: m.Creator,
	}
	for _, k := range m.Keywords {
		out.Keywords = append(out.Keywords, binding.Interpolate(k, tree))
	}
	return out
}
