package layout

import "fmt"

// FitScale 用固定次数的二分搜索寻找不使内容超出 target 的最大缩放，
// 并在返回前把该缩放应用到 c 上。
//
// 先尝试上界，若已放得下则直接采用。搜索期间只有放得下的缩放才会成为候选，
// 因此结果从不溢出；若连下界都放不下，则返回下界。
func FitScale(c Scalable, target float64, opts FitOptions) (float64, error) {
	opts = opts.withDefaults()
	if target <= 0 {
		return opts.Max, apply(c, opts.Max)
	}
	h, err := c.ApplyScale(opts.Max)
	if err != nil {
		return 0, fmt.Errorf("适配缩放 %.3f 失败: %w", opts.Max, err)
	}
	if h <= target {
		return opts.Max, nil
	}

	lo, hi, best := opts.Min, opts.Max, opts.Min
	for i := 0; i < opts.Iterations; i++ {
		mid := (lo + hi) / 2
		h, err := c.ApplyScale(mid)
		if err != nil {
			return 0, fmt.Errorf("适配缩放 %.3f 失败: %w", mid, err)
		}
		if h > target {
			hi = mid
		} else {
			best = mid
			lo = mid
		}
	}
	return best, apply(c, best)
}

func apply(c Scalable, scale float64) error {
	if _, err := c.ApplyScale(scale); err != nil {
		return fmt.Errorf("应用缩放 %.3f 失败: %w", scale, err)
	}
	return nil
}

// Column 把一串内容块视为单栏容器，使任意 Measurer 都能参与 FitScale。
type Column struct {
	Measurer Measurer
	Blocks   []Block
	// Flow 为最近一次 ApplyScale 的测量结果。
	Flow Flow
}

// ApplyScale 实现 Scalable：以给定缩放提交所有块，返回首块顶部到末块底部的高度。
func (c *Column) ApplyScale(scale float64) (float64, error) {
	flow, err := c.Measurer.Commit(c.Blocks, scale)
	if err != nil {
		return 0, err
	}
	c.Flow = flow
	if len(c.Blocks) == 0 {
		return 0, nil
	}
	return flow.Span(Group{Blocks: c.Blocks}).Height(), nil
}
