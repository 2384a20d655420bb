// Package tui renders trees for terminal output, with colors when the
// terminal supports them.
package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/history"
)

// RenderTree returns an indented listing of a widget tree.
func RenderTree(root *domain.Node) string {
	p := termenv.ColorProfile()
	var sb strings.Builder
	var walk func(n *domain.Node, depth int)
	walk = func(n *domain.Node, depth int) {
		id := termenv.String(n.ID).Foreground(p.Color("#818cf8")).String()
		kind := termenv.String(n.Kind).Foreground(p.Color("#a78bfa")).String()
		sb.WriteString(fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), id, kind))
		if view, ok := n.Properties["view"].(string); ok {
			sb.WriteString(" (" + view + ")")
		}
		sb.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return sb.String()
}

// RenderHistory returns an indented listing of the history tree with the
// cursor snapshot highlighted.
func RenderHistory(root *history.Snapshot, currentID int64) string {
	p := termenv.ColorProfile()
	var sb strings.Builder
	var walk func(s *history.Snapshot, depth int)
	walk = func(s *history.Snapshot, depth int) {
		label := fmt.Sprintf("s%d", s.ID)
		if s.ID == currentID {
			label = termenv.String(label + " *").Foreground(p.Color("#ffeb3b")).Bold().String()
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", strings.Repeat("  ", depth), label, s.CreatedAt.Format("15:04:05")))
		for _, c := range s.Children {
			walk(c, depth+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return sb.String()
}
