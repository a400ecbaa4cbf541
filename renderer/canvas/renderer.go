package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/renderer"
)

// Renderer measures and draws résumé blocks via github.com/tdewolff/canvas.
// Measurement and drawing share one composition path, so the heights the
// paginator sees are the heights that end up on paper.
type Renderer struct {
	geometry layout.Geometry
	fonts    *fontCache
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Geometry layout.Geometry
	Fonts    FontSources
}

// NewRenderer creates a renderer for the default Letter page and built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with the given page geometry and fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	geo := opts.Geometry
	if geo.Width.IsZero() || geo.Height.IsZero() {
		geo = layout.Letter()
	}
	return &Renderer{geometry: geo, fonts: newFontCache(opts.Fonts)}
}

// Geometry returns the page geometry used for measuring.
func (r *Renderer) Geometry() layout.Geometry { return r.geometry }

// Commit 实现 layout.Measurer：把所有块按顺序排入一栏，返回每块的上下边界（px）。
func (r *Renderer) Commit(blocks []layout.Block, scale float64) (layout.Flow, error) {
	if scale <= 0 {
		return layout.Flow{}, fmt.Errorf("文字缩放必须为正数: %g", scale)
	}
	width := r.contentWidth()
	boxes := make(map[int]layout.Box, len(blocks))
	cursor := 0.0
	for _, b := range blocks {
		composed, err := r.compose(b, width, scale)
		if err != nil {
			return layout.Flow{}, err
		}
		h := composed.height() * layout.MmToPx
		boxes[b.Index] = layout.Box{Top: cursor, Bottom: cursor + h}
		cursor += h
	}
	return layout.NewFlow(boxes), nil
}

// Render renders the plan into a PDF byte slice, one physical page per plan page.
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("分页结果为空")
	}
	if len(plan.Pages) == 0 {
		return nil, renderer.ErrEmptyPlan
	}
	scale := plan.Scale
	if scale <= 0 {
		scale = 1
	}
	geo := plan.Geometry
	if geo.Width.IsZero() || geo.Height.IsZero() {
		geo = r.geometry
	}
	width, height := geo.Width.ToMM(), geo.Height.ToMM()

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	r.applyMeta(writer, plan.Meta)
	for i, page := range plan.Pages {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page, geo, scale); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", page.Number, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.Meta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, geo layout.Geometry, scale float64) error {
	left := geo.MarginLeft.ToMM()
	width := geo.Width.ToMM() - left - geo.MarginRight.ToMM()
	cursorY := geo.MarginTop.ToMM()
	for _, g := range page.Groups {
		for _, b := range g.Blocks {
			composed, err := r.compose(b, width, scale)
			if err != nil {
				return err
			}
			cursorY = r.drawBox(ctx, composed, left, cursorY, width)
		}
	}
	return nil
}

// drawBox 从 top 开始逐行绘制，返回绘制后的游标位置（mm）。
func (r *Renderer) drawBox(ctx *canvas.Context, b box, left, top, width float64) float64 {
	cursorY := top
	for _, ln := range b.lines {
		cursorY += ln.gap
		// 基线位置：行顶部加上字体上升部
		baseline := cursorY + ln.ascent
		for _, rn := range ln.runs {
			ctx.DrawText(left+rn.x, baseline, canvas.NewTextLine(rn.face, rn.text, rn.align))
		}
		cursorY += ln.height
		if ln.rule {
			drawRule(ctx, left, cursorY, width)
		}
	}
	return cursorY + b.padding
}

// drawRule 在 y 处绘制一条横跨内容区的细线（毫米单位）。
func drawRule(ctx *canvas.Context, x, y, width float64) {
	ctx.SetStrokeColor(textColor)
	ctx.SetStrokeWidth(ruleWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(width, 0)
	ctx.DrawPath(x, y, p)
}

func (r *Renderer) contentWidth() float64 {
	return r.geometry.ContentWidth() * layout.PxToMm
}
