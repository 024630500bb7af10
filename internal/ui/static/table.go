// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as the history and
// preset tables and aligned key/value listings.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// RenderKeyValues renders key/value pairs with keys left-aligned to a
// common width. Used for config show and doctor output where a full
// table header would be noise.
func RenderKeyValues(pairs [][2]string) string {
	if len(pairs) == 0 {
		return ""
	}

	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var output strings.Builder
	for _, p := range pairs {
		output.WriteString(p[0])
		output.WriteString(strings.Repeat(" ", width-len(p[0])+2))
		output.WriteString(p[1])
		output.WriteString("\n")
	}

	return output.String()
}
