package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/vitae/layout"
)

var (
	colorCyan   = lipgloss.Color("36")  // 标题
	colorGreen  = lipgloss.Color("35")  // 正常
	colorYellow = lipgloss.Color("220") // 溢出警告
	colorGray   = lipgloss.Color("245") // 次要信息

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorGray)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader  = lipgloss.NewStyle().Bold(true).Width(8)
	styleCell    = lipgloss.NewStyle().PaddingLeft(1)
)

// formatPlan 渲染分页摘要：每页的段落列表、各段落所在页码与溢出状态。
func formatPlan(plan *layout.Plan, order layout.SectionOrder) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("分页结果"))
	fmt.Fprintf(&b, "  %s %s  %s %s  %s %s\n",
		styleDim.Render("模式"), styleNumber.Render(plan.Mode.String()),
		styleDim.Render("页数"), styleNumber.Render(fmt.Sprint(len(plan.Pages))),
		styleDim.Render("文字"), styleNumber.Render(fmt.Sprintf("%.0f%%", plan.Scale*100)),
	)

	for _, page := range plan.Pages {
		var ids []string
		for _, g := range page.Groups {
			if len(ids) == 0 || ids[len(ids)-1] != g.Section {
				ids = append(ids, g.Section)
			}
		}
		cell := styleDim.Render("(空)")
		if len(ids) > 0 {
			cell = strings.Join(ids, ", ")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			styleHeader.Render(fmt.Sprintf("第 %d 页", page.Number)),
			styleCell.Render(cell),
		))
		b.WriteString("\n")
	}

	for _, def := range order {
		page, ok := plan.Assignment[def.ID]
		switch {
		case def.Hidden:
			fmt.Fprintf(&b, "  %-18s %s\n", def.ID, styleDim.Render("隐藏"))
		case ok:
			fmt.Fprintf(&b, "  %-18s %s\n", def.ID, styleNumber.Render(fmt.Sprintf("p%d", page)))
		}
	}

	if plan.Mode == layout.Manual {
		if plan.Overflowed {
			b.WriteString(styleWarning.Render(fmt.Sprintf("! 内容需要 %d 页，超出目标 %d 页", len(plan.Pages), plan.TargetPages)))
		} else {
			b.WriteString(styleOK.Render(fmt.Sprintf("✓ 内容在目标 %d 页之内", plan.TargetPages)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
