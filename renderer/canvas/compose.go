package canvasrenderer

import (
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/resume"
)

// 以下尺寸均为 100% 文字缩放时的取值；字号单位为 pt，间距单位为 mm。
const (
	nameSize      = 20.0
	contactSize   = 9.5
	titleSize     = 11.0
	bodySize      = 10.0
	bulletIndent  = 4.5
	columnGap     = 3.0
	skillLabelW   = 40.0
	ruleWidth     = 0.3
	sectionGap    = 3.0
	entryGap      = 2.0
	headerPadding = 2.0
)

// run 是同一行中的一段文本，x 为相对内容区左侧的锚点（mm）。
type run struct {
	text  string
	face  *canvas.FontFace
	x     float64
	align canvas.TextAlign
}

// line 是排版后的一行。gap 为行前间距，rule 表示在行底部画分隔线。
type line struct {
	gap    float64
	height float64
	ascent float64
	runs   []run
	rule   bool
}

// box 是一个内容块排版后的结果，padding 为块底部的留白。
type box struct {
	lines   []line
	padding float64
}

func (b box) height() float64 {
	h := b.padding
	for _, ln := range b.lines {
		h += ln.gap + ln.height
	}
	return h
}

// composer 把内容块转换为行。渲染与测量共用这一路径，保证两者高度一致。
type composer struct {
	fonts   *fontCache
	width   float64
	scale   float64
	pending float64
	out     box
}

func (r *Renderer) compose(b layout.Block, width, scale float64) (box, error) {
	c := &composer{fonts: r.fonts, width: width, scale: scale}
	if err := c.block(b); err != nil {
		return box{}, err
	}
	c.out.padding += c.pending
	return c.out, nil
}

func (c *composer) block(b layout.Block) error {
	switch b.Kind {
	case layout.KindHeader:
		doc, ok := b.Ref.(*resume.Document)
		if !ok {
			return fmt.Errorf("页眉块缺少文档引用")
		}
		return c.header(doc)
	case layout.KindSectionTitle:
		return c.heading(b.Label)
	case layout.KindFixed:
		if err := c.heading(b.Label); err != nil {
			return err
		}
		switch ref := b.Ref.(type) {
		case *string:
			return c.paragraph(canvas.FontRegular, bodySize, *ref)
		case *resume.Skills:
			return c.skills(*ref)
		}
	case layout.KindEntry, layout.KindItem:
		c.space(entryGap)
		switch ref := b.Ref.(type) {
		case *resume.Job:
			return c.job(ref)
		case *resume.Education:
			return c.education(ref)
		case *resume.Project:
			return c.project(ref)
		case *resume.Award:
			return c.award(ref)
		case *resume.Publication:
			return c.publication(ref)
		case *resume.Item:
			return c.item(ref)
		}
	}
	return fmt.Errorf("无法排版的内容块 %s(%T)", b.Kind, b.Ref)
}

func (c *composer) header(doc *resume.Document) error {
	if doc.Name != "" {
		if err := c.text(canvas.FontBold, nameSize, doc.Name, canvas.Center, 0); err != nil {
			return err
		}
	}
	var parts []string
	for _, p := range []string{doc.Contact.Phone, doc.Contact.Location, doc.Contact.LinkedIn, doc.Contact.GitHub, doc.Contact.Website, doc.Contact.Email} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		if err := c.text(canvas.FontRegular, contactSize, strings.Join(parts, " | "), canvas.Center, 0); err != nil {
			return err
		}
	}
	c.space(headerPadding)
	return nil
}

func (c *composer) heading(label string) error {
	c.space(sectionGap)
	if err := c.text(canvas.FontBold, titleSize, strings.ToUpper(label), canvas.Left, 0); err != nil {
		return err
	}
	c.out.lines[len(c.out.lines)-1].rule = true
	c.space(1)
	return nil
}

func (c *composer) job(j *resume.Job) error {
	if err := c.pair(canvas.FontBold, j.Company, canvas.FontRegular, j.Location); err != nil {
		return err
	}
	if err := c.pair(canvas.FontItalic, j.Title, canvas.FontRegular, j.Dates); err != nil {
		return err
	}
	if j.Tagline != "" {
		if err := c.bullet(canvas.FontItalic, j.Tagline); err != nil {
			return err
		}
	}
	return c.bullets(j.Responsibilities)
}

func (c *composer) education(e *resume.Education) error {
	school := e.Institution
	if e.Location != "" {
		school += "; " + e.Location
	}
	if err := c.pair(canvas.FontBold, school, canvas.FontRegular, e.GraduationDate); err != nil {
		return err
	}
	return c.paragraph(canvas.FontRegular, bodySize, e.Details)
}

func (c *composer) project(p *resume.Project) error {
	if err := c.pair(canvas.FontBold, p.Name, canvas.FontRegular, p.Dates); err != nil {
		return err
	}
	if err := c.paragraph(canvas.FontItalic, bodySize, p.URL); err != nil {
		return err
	}
	if err := c.paragraph(canvas.FontRegular, bodySize, p.Description); err != nil {
		return err
	}
	return c.bullets(p.Bullets)
}

func (c *composer) award(a *resume.Award) error {
	if err := c.pair(canvas.FontBold, a.Title, canvas.FontRegular, a.Date); err != nil {
		return err
	}
	if err := c.paragraph(canvas.FontItalic, bodySize, a.Issuer); err != nil {
		return err
	}
	return c.paragraph(canvas.FontRegular, bodySize, a.Description)
}

func (c *composer) publication(p *resume.Publication) error {
	if err := c.pair(canvas.FontBold, p.Title, canvas.FontRegular, p.Date); err != nil {
		return err
	}
	if err := c.paragraph(canvas.FontRegular, bodySize, p.Authors); err != nil {
		return err
	}
	if err := c.paragraph(canvas.FontItalic, bodySize, p.Venue); err != nil {
		return err
	}
	return c.paragraph(canvas.FontRegular, bodySize, p.URL)
}

func (c *composer) item(it *resume.Item) error {
	if err := c.pair(canvas.FontBold, it.Title, canvas.FontRegular, it.Date); err != nil {
		return err
	}
	if err := c.paragraph(canvas.FontRegular, bodySize, it.Body); err != nil {
		return err
	}
	return c.bullets(it.Bullets)
}

// skills 以两栏表格排版：左栏为加粗的标签，右栏为换行后的取值。
func (c *composer) skills(skills resume.Skills) error {
	labelW := skillLabelW * c.scale
	for _, s := range skills {
		value := s.Value()
		if value == "" {
			continue
		}
		label, err := c.face(canvas.FontBold, bodySize)
		if err != nil {
			return err
		}
		body, err := c.face(canvas.FontRegular, bodySize)
		if err != nil {
			return err
		}
		wrapped := greedyWrap(value, c.width-labelW, body)
		for i, wl := range wrapped {
			runs := []run{{text: wl.Content, face: body, x: labelW, align: canvas.Left}}
			if i == 0 {
				runs = append(runs, run{text: s.Label() + ":", face: label, x: 0, align: canvas.Left})
			}
			c.push(runs)
		}
	}
	return nil
}

func (c *composer) bullets(items []string) error {
	for _, it := range items {
		if err := c.bullet(canvas.FontRegular, it); err != nil {
			return err
		}
	}
	return nil
}

func (c *composer) bullet(style canvas.FontStyle, s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	face, err := c.face(style, bodySize)
	if err != nil {
		return err
	}
	indent := bulletIndent * c.scale
	for i, wl := range greedyWrap(s, c.width-indent, face) {
		runs := []run{{text: wl.Content, face: face, x: indent, align: canvas.Left}}
		if i == 0 {
			runs = append(runs, run{text: "•", face: face, x: indent / 3, align: canvas.Left})
		}
		c.push(runs)
	}
	return nil
}

// pair 排版左右对齐的一行：左侧文本可换行，右侧文本只出现在首行。
func (c *composer) pair(leftStyle canvas.FontStyle, left string, rightStyle canvas.FontStyle, right string) error {
	if left == "" && right == "" {
		return nil
	}
	lf, err := c.face(leftStyle, bodySize)
	if err != nil {
		return err
	}
	rf, err := c.face(rightStyle, bodySize)
	if err != nil {
		return err
	}
	limit := c.width
	if right != "" {
		limit -= rf.TextWidth(right) + columnGap*c.scale
	}
	wrapped := greedyWrap(left, limit, lf)
	for i, wl := range wrapped {
		runs := []run{{text: wl.Content, face: lf, x: 0, align: canvas.Left}}
		if i == 0 && right != "" {
			runs = append(runs, run{text: right, face: rf, x: c.width, align: canvas.Right})
		}
		c.push(runs)
	}
	return nil
}

func (c *composer) paragraph(style canvas.FontStyle, size float64, s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return c.text(style, size, s, canvas.Left, 0)
}

// text 按宽度换行并逐行输出；indent 仅对左对齐生效。
func (c *composer) text(style canvas.FontStyle, size float64, s string, align canvas.TextAlign, indent float64) error {
	face, err := c.face(style, size)
	if err != nil {
		return err
	}
	x := indent
	switch align {
	case canvas.Center:
		x = c.width / 2
	case canvas.Right:
		x = c.width
	}
	for _, wl := range greedyWrap(s, c.width-indent, face) {
		c.push([]run{{text: wl.Content, face: face, x: x, align: align}})
	}
	return nil
}

func (c *composer) face(style canvas.FontStyle, size float64) (*canvas.FontFace, error) {
	return c.fonts.face(style, size*c.scale)
}

// space 在下一行之前追加间距（按缩放）。
func (c *composer) space(mm float64) { c.pending += mm * c.scale }

func (c *composer) push(runs []run) {
	ln := line{gap: c.pending, runs: runs}
	for _, r := range runs {
		m := r.face.Metrics()
		if m.LineHeight > ln.height {
			ln.height = m.LineHeight
		}
		if m.Ascent > ln.ascent {
			ln.ascent = m.Ascent
		}
	}
	c.pending = 0
	c.out.lines = append(c.out.lines, ln)
}
