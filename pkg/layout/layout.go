package layout

import "github.com/aretw0/mosaic/pkg/history"

// Geometry constants, in abstract canvas units.
const (
	ColumnWidth = 80.0
	RowHeight   = 40.0 // vertical span claimed by one leaf
	Margin      = 24.0
	NodeRadius  = 10.0
)

// Position is the computed placement of one snapshot.
type Position struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Current bool    `json:"current"`
}

// Size is the bounding box of the whole layout.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result holds per-snapshot positions plus the hit-test table. It is a
// plain value: compute once per render, query as often as needed.
type Result struct {
	Positions map[int64]Position `json:"positions"`
	Bounds    Size               `json:"bounds"`

	// order preserves traversal order for deterministic hit testing.
	order []int64
}

// Compute lays out the history tree rooted at root. currentID marks the
// cursor snapshot in the result. Pure function: the tree is only read.
func Compute(root *history.Snapshot, currentID int64) Result {
	res := Result{Positions: make(map[int64]Position)}
	if root == nil {
		return res
	}

	maxDepth := 0
	var place func(s *history.Snapshot, depth int, top float64) (span, y float64)
	place = func(s *history.Snapshot, depth int, top float64) (float64, float64) {
		res.order = append(res.order, s.ID)
		if depth > maxDepth {
			maxDepth = depth
		}
		x := float64(depth)*ColumnWidth + Margin

		var span, y float64
		if len(s.Children) == 0 {
			span = RowHeight
			y = top + RowHeight/2
		} else {
			var firstY, lastY float64
			offset := top
			for i, c := range s.Children {
				childSpan, childY := place(c, depth+1, offset)
				offset += childSpan
				span += childSpan
				if i == 0 {
					firstY = childY
				}
				lastY = childY
			}
			y = (firstY + lastY) / 2
		}

		res.Positions[s.ID] = Position{
			X:       x,
			Y:       y,
			Radius:  NodeRadius,
			Current: s.ID == currentID,
		}
		return span, y
	}

	totalSpan, _ := place(root, 0, Margin)
	res.Bounds = Size{
		Width:  float64(maxDepth)*ColumnWidth + Margin,
		Height: totalSpan + Margin,
	}
	return res
}

// HitTest returns the id of the first snapshot (in traversal order) whose
// circle contains the point, after subtracting the caller's pan offset.
func (r Result) HitTest(x, y, panX, panY float64) (int64, bool) {
	px := x - panX
	py := y - panY
	for _, id := range r.order {
		pos := r.Positions[id]
		dx := px - pos.X
		dy := py - pos.Y
		if dx*dx+dy*dy <= pos.Radius*pos.Radius {
			return id, true
		}
	}
	return 0, false
}
