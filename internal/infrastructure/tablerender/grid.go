package tablerender

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"vault_reporter/internal/domain/entity"
)

const cellPadding = 1

// GridRenderer draws tables with an ASCII grid: a rule under the header and
// between every body row.
type GridRenderer struct {
	border lipgloss.Border
}

// NewGridRenderer returns a renderer using the plain ASCII border set.
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{border: lipgloss.ASCIIBorder()}
}

// Render implements port.TableRenderer.
func (r *GridRenderer) Render(t entity.Table) string {
	widths := columnWidths(t)
	base := lipgloss.NewStyle().Padding(0, cellPadding)

	tbl := table.New().
		Border(r.border).
		BorderHeader(true).
		BorderRow(true).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col < len(widths) && widths[col] > 0 {
				return base.Width(widths[col] + 2*cellPadding)
			}
			return base
		})

	return tbl.Render()
}

// columnWidths returns, per column, the capped content width or 0 when the
// column has no cap. Cells wider than the cap wrap onto extra lines.
func columnWidths(t entity.Table) []int {
	widths := make([]int, len(t.MaxColWidths))
	for col, limit := range t.MaxColWidths {
		if limit <= 0 {
			continue
		}
		widest := 0
		if col < len(t.Headers) {
			widest = lipgloss.Width(t.Headers[col])
		}
		for _, row := range t.Rows {
			if col < len(row) {
				widest = max(widest, lipgloss.Width(row[col]))
			}
		}
		widths[col] = min(widest, limit)
	}
	return widths
}
