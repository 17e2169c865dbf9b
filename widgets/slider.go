package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-midifx/fx"
	"go-midifx/theme"
)

// Slider renders norm (0-1) as a bar of width cells
func Slider(norm float64, width int, full, empty rune) string {
	if width <= 0 {
		return ""
	}
	n := int(norm*float64(width) + 0.5)
	n = max(0, min(n, width))
	return strings.Repeat(string(full), n) + strings.Repeat(string(empty), width-n)
}

// ParamRow renders "name  ████░░░░  value  [min, max]"
func ParamRow(th *theme.Theme, p fx.Param, selected bool, width int) string {
	bar := Slider(p.Normalized(), width, th.Symbols.SliderFull, th.Symbols.SliderEmpty)

	nameStyle := lipgloss.NewStyle().Foreground(th.Muted())
	barStyle := lipgloss.NewStyle().Foreground(th.Muted())
	cursor := " "
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
		barStyle = lipgloss.NewStyle().Foreground(th.Active())
		cursor = string(th.Symbols.Cursor)
	}

	return fmt.Sprintf("  %s %s %s %s",
		cursor,
		nameStyle.Render(fmt.Sprintf("%-11s", p.Name)),
		barStyle.Render(bar),
		fmt.Sprintf("%6g  [%g, %g]", p.Value, p.Min, p.Max),
	)
}

// SlotRow renders one effect slot of a chain
func SlotRow(th *theme.Theme, index int, e fx.Effect, selected bool) string {
	mark := th.Symbols.Active
	color := th.KindColor(int(e.Kind()), len(fx.Kinds()))
	if e.Bypassed() {
		mark = th.Symbols.Bypassed
		color = th.Muted()
	}

	cursor := " "
	if selected {
		cursor = string(th.Symbols.Cursor)
	}
	style := lipgloss.NewStyle().Foreground(color)
	if selected {
		style = style.Bold(true)
	}
	return fmt.Sprintf("%s %d %s", cursor, index+1, style.Render(fmt.Sprintf("%c %s", mark, e.Name())))
}
