package renderer

import (
	"errors"

	"github.com/ByLCY/vitae/layout"
)

// ErrEmptyPlan 表示分页结果没有任何页面，调用方应视为“无内容可渲染”。
var ErrEmptyPlan = errors.New("没有可渲染的页面")

// Renderer 将分页结果输出为最终文件，例如 PDF。
// 每个页面都输出为独立的物理页，顺序与 plan.Pages 一致。
type Renderer interface {
	Render(plan *layout.Plan) ([]byte, error)
}
