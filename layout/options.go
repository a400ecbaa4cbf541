package layout

// Box 是一个内容块在页面坐标系（96dpi 的 px）中的上下边界。
type Box struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Height 返回盒子高度。
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Flow 保存一次提交后所有内容块的测量结果。
// 只能由 Measurer.Commit 产生，因此读取高度必然发生在提交之后。
type Flow struct {
	boxes map[int]Box
}

// NewFlow 以块序号为键构造测量结果，供 Measurer 实现使用。
func NewFlow(boxes map[int]Box) Flow {
	cp := make(map[int]Box, len(boxes))
	for k, v := range boxes {
		cp[k] = v
	}
	return Flow{boxes: cp}
}

// Box 返回序号为 index 的块的边界。
func (f Flow) Box(index int) (Box, bool) {
	b, ok := f.boxes[index]
	return b, ok
}

// Span 返回组的整体边界：首块顶部到末块底部。缺失的块按零处理。
func (f Flow) Span(g Group) Box {
	if len(g.Blocks) == 0 {
		return Box{}
	}
	top, _ := f.Box(g.first().Index)
	bottom, _ := f.Box(g.last().Index)
	return Box{Top: top.Top, Bottom: bottom.Bottom}
}

// Len 返回已测量块的数量。
func (f Flow) Len() int { return len(f.boxes) }

// Measurer 是测量后端：把内容块以统一缩放写入排版环境，再返回各块的位置。
type Measurer interface {
	Commit(blocks []Block, scale float64) (Flow, error)
}

// MeasurerFunc 让普通函数满足 Measurer。
type MeasurerFunc func(blocks []Block, scale float64) (Flow, error)

// Commit 实现 Measurer。
func (fn MeasurerFunc) Commit(blocks []Block, scale float64) (Flow, error) {
	return fn(blocks, scale)
}

// Scalable 是文字适配搜索的对象：按给定缩放重新排版，并返回内容高度。
type Scalable interface {
	ApplyScale(scale float64) (float64, error)
}

// FitOptions 配置 FitScale 的搜索区间与迭代次数，零值使用默认值。
type FitOptions struct {
	Min        float64
	Max        float64
	Iterations int
}

func (o FitOptions) withDefaults() FitOptions {
	if o.Min <= 0 {
		o.Min = 0.1
	}
	if o.Max <= 0 {
		o.Max = 1.0
	}
	if o.Max < o.Min {
		o.Min, o.Max = o.Max, o.Min
	}
	if o.Iterations <= 0 {
		o.Iterations = 10
	}
	return o
}

// Blocks 按顺序展开所有组中的块。
func Blocks(groups []Group) []Block {
	var out []Block
	for _, g := range groups {
		out = append(out, g.Blocks...)
	}
	return out
}
