package views

import (
	"fmt"
	"strings"

	"expandlist/internal/domain"
)

// RenderPlain renders rows without styling, one per line, for non-terminal output
func RenderPlain(rows []domain.FlattenedRow, showChildCount bool) string {
	var b strings.Builder
	for _, row := range rows {
		if row.IsParent() {
			marker := "+"
			if row.Parent.Expanded {
				marker = "-"
			}
			b.WriteString(marker)
			b.WriteString(" ")
			b.WriteString(row.Parent.Text)
			if showChildCount {
				fmt.Fprintf(&b, " (%d)", len(row.Parent.Children))
			}
		} else {
			b.WriteString("    ")
			b.WriteString(row.Child.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}
