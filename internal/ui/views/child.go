package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"expandlist/internal/domain"
)

// childIndent is the indentation level of child rows under their parent
const childIndent = 2

// ChildRenderer handles rendering of child rows
type ChildRenderer struct {
	styles *Styles
}

// NewChildRenderer creates a new child renderer
func NewChildRenderer(styles *Styles) *ChildRenderer {
	return &ChildRenderer{styles: styles}
}

// RenderChild renders an indented child row
func (c *ChildRenderer) RenderChild(child *domain.ChildItem, isLast bool, isSelected bool, width int) string {
	if child == nil {
		return ""
	}

	branch := "├─"
	if isLast {
		branch = "└─"
	}
	indent := strings.Repeat(" ", childIndent)

	text := child.Text
	if width > 0 {
		text = truncate(text, width-childIndent-runewidth.StringWidth(branch)-1)
	}

	if isSelected {
		line := fmt.Sprintf("%s%s %s", indent, branch, text)
		return c.styles.SelectionBg.Render(padRight(line, width))
	}
	return fmt.Sprintf("%s%s %s", indent, c.styles.ChildBullet.Render(branch), text)
}
