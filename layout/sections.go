package layout

import "github.com/ByLCY/vitae/resume"

// SectionKind 描述段落的内容形态。
type SectionKind int

const (
	SectionFixed SectionKind = iota // 单个固定块，例如技能表
	SectionList                     // 可展开的条目列表，例如工作经历
	SectionItems                    // 每个条目拥有独立标识，可单独钉选
)

// MarshalText 实现 encoding.TextMarshaler。
func (k SectionKind) MarshalText() ([]byte, error) {
	switch k {
	case SectionList:
		return []byte("list"), nil
	case SectionItems:
		return []byte("items"), nil
	default:
		return []byte("fixed"), nil
	}
}

// SectionDef 描述一个逻辑段落。
type SectionDef struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Kind   SectionKind `json:"kind"`
	Hidden bool        `json:"hidden,omitempty"`
}

// SectionOrder 是段落的渲染顺序。所有修改方法都返回新值，不改动接收者。
type SectionOrder []SectionDef

// DefaultOrder 返回默认段落顺序。
func DefaultOrder() SectionOrder {
	return SectionOrder{
		{ID: resume.SectionSummary, Label: "Summary", Kind: SectionFixed},
		{ID: resume.SectionWork, Label: "Work Experience", Kind: SectionList},
		{ID: resume.SectionEducation, Label: "Education", Kind: SectionList},
		{ID: resume.SectionProjects, Label: "Projects", Kind: SectionList},
		{ID: resume.SectionAwards, Label: "Awards", Kind: SectionList},
		{ID: resume.SectionPublications, Label: "Publications", Kind: SectionList},
		{ID: resume.SectionAdditional, Label: "Additional", Kind: SectionItems},
		{ID: resume.SectionSkills, Label: "Skills", Kind: SectionFixed},
	}
}

// Index 返回段落在顺序中的位置，不存在时返回 -1。
func (o SectionOrder) Index(id string) int {
	for i, def := range o {
		if def.ID == id {
			return i
		}
	}
	return -1
}

// IDs 返回按顺序排列的段落标识。
func (o SectionOrder) IDs() []string {
	out := make([]string, len(o))
	for i, def := range o {
		out[i] = def.ID
	}
	return out
}

func (o SectionOrder) clone() SectionOrder {
	return append(SectionOrder(nil), o...)
}

// Move 把段落移动到 to 位置（从 0 开始，越界时收敛到两端）。
// 段落不存在时 ok 为 false，返回原顺序的副本。
func (o SectionOrder) Move(id string, to int) (SectionOrder, bool) {
	from := o.Index(id)
	out := o.clone()
	if from < 0 {
		return out, false
	}
	to = clamp(to, 0, len(out)-1)
	def := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(SectionOrder{def}, out[to:]...)...)
	return out, true
}

// MoveUp 把段落向前移动一位。
func (o SectionOrder) MoveUp(id string) (SectionOrder, bool) {
	i := o.Index(id)
	if i < 0 {
		return o.clone(), false
	}
	return o.Move(id, i-1)
}

// MoveDown 把段落向后移动一位。
func (o SectionOrder) MoveDown(id string) (SectionOrder, bool) {
	i := o.Index(id)
	if i < 0 {
		return o.clone(), false
	}
	return o.Move(id, i+1)
}

// Reorder 按 ids 给出的顺序重新排列；未列出的段落保持相对顺序追加在末尾。
// 出现未知标识时 ok 为 false。
func (o SectionOrder) Reorder(ids []string) (SectionOrder, bool) {
	out := make(SectionOrder, 0, len(o))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		i := o.Index(id)
		if i < 0 {
			return o.clone(), false
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, o[i])
	}
	for _, def := range o {
		if !seen[def.ID] {
			out = append(out, def)
		}
	}
	return out, true
}

// WithHidden 设置段落的隐藏标记。
func (o SectionOrder) WithHidden(id string, hidden bool) (SectionOrder, bool) {
	out := o.clone()
	i := out.Index(id)
	if i < 0 {
		return out, false
	}
	out[i].Hidden = hidden
	return out, true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
