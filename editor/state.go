package editor

import (
	"github.com/ByLCY/vitae/layout"
)

// Limits bounds the user-facing controls.
type Limits struct {
	TextMin  int
	TextMax  int
	TextStep int
	PagesMin int
	PagesMax int
}

// DefaultLimits returns text 50–100% in steps of 5 and 1–3 target pages.
func DefaultLimits() Limits {
	return Limits{TextMin: 50, TextMax: 100, TextStep: 5, PagesMin: 1, PagesMax: 3}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.TextMin <= 0 {
		l.TextMin = def.TextMin
	}
	if l.TextMax < l.TextMin {
		l.TextMax = max(def.TextMax, l.TextMin)
	}
	if l.TextStep <= 0 {
		l.TextStep = def.TextStep
	}
	if l.PagesMin <= 0 {
		l.PagesMin = def.PagesMin
	}
	if l.PagesMax < l.PagesMin {
		l.PagesMax = max(def.PagesMax, l.PagesMin)
	}
	return l
}

func (l Limits) clampText(pct int) int { return min(max(pct, l.TextMin), l.TextMax) }
func (l Limits) clampPages(n int) int  { return min(max(n, l.PagesMin), l.PagesMax) }

// State 是一次编辑会话中跨流水线保留的布局状态。
// 所有转换方法都返回新值，接收者保持不变。
type State struct {
	Order       layout.SectionOrder
	Mode        layout.Mode
	TargetPages int
	Pins        layout.PinMap
	// TextScale 为文字缩放百分比。
	TextScale int
	// Last 与 LastPages 记录最近一次分页的结果，用于进入手动模式时冻结当前位置。
	Last      layout.Assignment
	LastPages int
}

// NewState 返回新文档的初始状态：默认顺序、自动模式、100% 文字。
func NewState(l Limits) State {
	l = l.withDefaults()
	return State{
		Order:     layout.DefaultOrder(),
		Mode:      layout.Automatic,
		TextScale: l.clampText(100),
	}
}

// Clone 返回不共享 map 与切片的副本。
func (s State) Clone() State {
	out := s
	out.Order = append(layout.SectionOrder(nil), s.Order...)
	out.Pins = s.Pins.Clone()
	out.Last = s.Last.Clone()
	return out
}

// Scale 返回 TextScale 对应的缩放系数。
func (s State) Scale() float64 { return float64(s.TextScale) / 100 }

// EnterManual 切换到手动模式：目标页数取最近一次分页的页数（收敛到允许范围），
// 钉选表取最近一次的页码分配。已处于手动模式时不做改动。
func (s State) EnterManual(l Limits) State {
	out := s.Clone()
	if s.Mode == layout.Manual {
		return out
	}
	l = l.withDefaults()
	out.Mode = layout.Manual
	out.TargetPages = l.clampPages(s.LastPages)
	out.Pins = s.Last.Pins()
	if out.Pins == nil {
		out.Pins = layout.PinMap{}
	}
	return out
}

// EnterAutomatic 切换回自动模式并清空钉选表与目标页数。
func (s State) EnterAutomatic() State {
	out := s.Clone()
	out.Mode = layout.Automatic
	out.TargetPages = 0
	out.Pins = nil
	return out
}

// WithTargetPages 修改目标页数并清空钉选表，让内容重新分配。
func (s State) WithTargetPages(n int, l Limits) (State, error) {
	if s.Mode != layout.Manual {
		return s, ErrNotManual
	}
	out := s.Clone()
	out.TargetPages = l.withDefaults().clampPages(n)
	out.Pins = layout.PinMap{}
	return out, nil
}

// WithPin 先把当前页码分配整体写入钉选表，再覆盖指定段落的页码，
// 以免移动一个段落时其他段落被悄悄重新安排。
func (s State) WithPin(section string, page int) (State, error) {
	if s.Mode != layout.Manual {
		return s, ErrNotManual
	}
	out := s.Clone()
	pins := s.Last.Pins()
	if pins == nil {
		pins = layout.PinMap{}
	}
	pins[section] = min(max(page, 1), max(out.TargetPages, 1))
	out.Pins = pins
	return out, nil
}

// WithTextScale 设置文字缩放百分比（收敛到允许范围）。
func (s State) WithTextScale(pct int, l Limits) State {
	out := s.Clone()
	out.TextScale = l.withDefaults().clampText(pct)
	return out
}

// ShiftText 按步长增减文字缩放。
func (s State) ShiftText(steps int, l Limits) State {
	l = l.withDefaults()
	return s.WithTextScale(s.TextScale+steps*l.TextStep, l)
}

// Observe 记录一次分页的结果。
func (s State) Observe(plan *layout.Plan) State {
	out := s.Clone()
	if plan == nil {
		return out
	}
	out.Last = plan.Assignment.Clone()
	out.LastPages = len(plan.Pages)
	return out
}
