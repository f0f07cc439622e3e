package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/arin/copygen/internal/variant"
)

const cardWidth = 44

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1).
			MarginLeft(2).
			Width(cardWidth)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	indexStyle = lipgloss.NewStyle().Faint(true)
)

// RenderVariants draws one bordered card per variant.
func RenderVariants(w io.Writer, variants []variant.Variant) {
	if len(variants) == 0 {
		color.New(color.FgYellow).Fprintln(w, "  No taglines could be parsed from the response.")
		return
	}
	for i, v := range variants {
		title := indexStyle.Render(fmt.Sprintf("%d ", i+1)) + labelStyle.Render("["+v.Style+"]")
		fmt.Fprintln(w, cardStyle.Render(title+"\n"+v.Content))
	}
}
