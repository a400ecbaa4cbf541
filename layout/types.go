package layout

// 该文件定义分页引擎的数据模型，供收集、分页、编排与调试 JSON 共用。

// HeaderSection 是页眉块使用的段落标识。
const HeaderSection = "header"

// BlockKind 区分内容块的语义类别，渲染后端据此选择排版方式。
type BlockKind int

const (
	KindHeader       BlockKind = iota // 姓名与联系方式
	KindSectionTitle                  // 段落标题
	KindEntry                         // 列表型段落中的一个条目（工作、教育……）
	KindFixed                         // 固定块段落（技能表、摘要）
	KindItem                          // 可独立排序的自由条目
)

var kindNames = [...]string{"header", "title", "entry", "fixed", "item"}

func (k BlockKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText 让调试 JSON 输出可读的类别名。
func (k BlockKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Block 是最小的可测量内容单元，每次流水线运行都会从文档重新生成。
type Block struct {
	Index   int       `json:"index"`
	Kind    BlockKind `json:"kind"`
	Section string    `json:"section"`
	Label   string    `json:"label,omitempty"`
	// Ref 指向 resume 包中的实体（*resume.Job、*resume.Skills 等）。
	Ref any `json:"-"`
}

// Group 是一组必须同页放置的连续内容块，所有块共享同一个段落标识。
type Group struct {
	Section string  `json:"section"`
	Blocks  []Block `json:"blocks"`
}

// IsHeader 报告该组是否为页眉组。
func (g Group) IsHeader() bool {
	return len(g.Blocks) > 0 && g.Blocks[0].Kind == KindHeader
}

// first/last 仅在 Blocks 非空时有意义；Collect 从不产出空组。
func (g Group) first() Block { return g.Blocks[0] }
func (g Group) last() Block  { return g.Blocks[len(g.Blocks)-1] }

// Mode 为布局模式。
type Mode int

const (
	Automatic Mode = iota
	Manual
)

func (m Mode) String() string {
	if m == Manual {
		return "manual"
	}
	return "auto"
}

// MarshalText 实现 encoding.TextMarshaler。
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// PinMap 记录手动模式下用户把段落固定到的页码（从 1 开始）。
type PinMap map[string]int

// Clone 返回一份独立副本。
func (p PinMap) Clone() PinMap {
	if p == nil {
		return nil
	}
	out := make(PinMap, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Assignment 记录每个段落的首个组落在第几页（从 1 开始）。
type Assignment map[string]int

// Clone 返回一份独立副本。
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Pins 把分配结果转换为钉选表，用于进入手动模式时冻结当前位置。
func (a Assignment) Pins() PinMap {
	return PinMap(a.Clone())
}

// Page 是一张物理页上按顺序排列的组。
type Page struct {
	Number int     `json:"number"`
	Groups []Group `json:"groups"`
}

// Plan 是一次流水线运行的完整输出，交给页面渲染器使用。
type Plan struct {
	Pages       []Page     `json:"pages"`
	Assignment  Assignment `json:"assignment"`
	Overflowed  bool       `json:"overflowed"`
	Mode        Mode       `json:"mode"`
	TargetPages int        `json:"targetPages,omitempty"`
	// Scale 为统一的文字缩放系数（1 表示 100%）。
	Scale    float64  `json:"scale"`
	Geometry Geometry `json:"geometry"`
	Meta     Meta     `json:"meta"`
}

// Meta 保存 PDF 元信息。
type Meta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// newPlan 把分页得到的组序列包装为带页码的 Plan。
func newPlan(pages [][]Group, assignment Assignment) *Plan {
	out := make([]Page, len(pages))
	for i, groups := range pages {
		out[i] = Page{Number: i + 1, Groups: groups}
	}
	return &Plan{Pages: out, Assignment: assignment}
}
