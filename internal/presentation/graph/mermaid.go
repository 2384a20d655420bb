// Package graph renders the history tree as Mermaid flowchart syntax, the
// quickest way to eyeball a branching session in a browser or README.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/mosaic/pkg/history"
)

// GenerateMermaid produces a Mermaid flowchart (graph LR) of the history
// tree. The cursor snapshot is highlighted; the root is drawn as a circle.
func GenerateMermaid(root *history.Snapshot, currentID int64) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	if root == nil {
		return sb.String()
	}

	root.Walk(func(s *history.Snapshot) bool {
		opener, closer := "[", "]"
		if s.Parent == nil {
			opener, closer = "((", "))" // Circle for the session origin
		}
		sb.WriteString(fmt.Sprintf("    s%d%s\"s%d\"%s\n", s.ID, opener, s.ID, closer))

		for _, c := range s.Children {
			sb.WriteString(fmt.Sprintf("    s%d --> s%d\n", s.ID, c.ID))
		}
		return true
	})

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef onpath fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	// Style the undo path (root -> cursor) so the active branch stands out.
	if cursor := root.Find(currentID); cursor != nil {
		for s := cursor.Parent; s != nil; s = s.Parent {
			sb.WriteString(fmt.Sprintf("    class s%d onpath;\n", s.ID))
		}
		sb.WriteString(fmt.Sprintf("    class s%d current;\n", cursor.ID))
	}

	return sb.String()
}
