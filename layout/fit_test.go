package layout

import (
	"errors"
	"math"
	"testing"
)

// linearContent 的高度与缩放成正比，并记录最后应用的缩放。
type linearContent struct {
	base    float64
	applied float64
	calls   int
	fail    bool
}

func (c *linearContent) ApplyScale(scale float64) (float64, error) {
	c.calls++
	if c.fail {
		return 0, errors.New("boom")
	}
	c.applied = scale
	return c.base * scale, nil
}

func TestFitScaleFindsLargestFittingScale(t *testing.T) {
	c := &linearContent{base: 2000}
	scale, err := FitScale(c, 1000, FitOptions{})
	if err != nil {
		t.Fatalf("FitScale 返回错误: %v", err)
	}
	if scale > 0.5 {
		t.Fatalf("结果不得溢出: %g", scale)
	}
	if precision := 0.9 / 1024; 0.5-scale > precision {
		t.Fatalf("精度不足: %g", scale)
	}
	if c.applied != scale {
		t.Fatalf("最终应应用所得缩放: applied=%g scale=%g", c.applied, scale)
	}
	if c.calls != 12 {
		t.Fatalf("应先探测上界再迭代 10 次并应用结果，实际调用 %d 次", c.calls)
	}
}

func TestFitScaleKeepsMaxWhenContentFits(t *testing.T) {
	c := &linearContent{base: 800}
	scale, err := FitScale(c, 1000, FitOptions{})
	if err != nil || scale != 1.0 || c.calls != 1 {
		t.Fatalf("内容已放得下时应直接返回上界: scale=%g calls=%d err=%v", scale, c.calls, err)
	}
}

func TestFitScaleFallsBackToMin(t *testing.T) {
	c := &linearContent{base: 1e6}
	scale, err := FitScale(c, 1000, FitOptions{Min: 0.2, Max: 1, Iterations: 4})
	if err != nil {
		t.Fatalf("FitScale 返回错误: %v", err)
	}
	if scale != 0.2 || c.applied != 0.2 {
		t.Fatalf("都放不下时应返回下界: scale=%g applied=%g", scale, c.applied)
	}
}

func TestFitScaleMonotonic(t *testing.T) {
	for _, base := range []float64{1001, 1500, 3000, 7000, 9999} {
		c := &linearContent{base: base}
		scale, err := FitScale(c, 1000, FitOptions{})
		if err != nil {
			t.Fatalf("FitScale 返回错误: %v", err)
		}
		if h := base * scale; h > 1000 {
			t.Fatalf("高度 %g 超出目标", h)
		}
		ideal := 1000 / base
		if math.Abs(ideal-scale) > 0.9/1024 {
			t.Fatalf("base=%g 期望接近 %g，实际 %g", base, ideal, scale)
		}
	}
}

func TestFitScalePropagatesErrors(t *testing.T) {
	if _, err := FitScale(&linearContent{fail: true}, 1000, FitOptions{}); err == nil {
		t.Fatalf("测量失败应返回错误")
	}
}
