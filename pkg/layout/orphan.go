package layout

import "math"

// orphanColumnWidth is the nominal column pitch of the orphan grid. Wider
// tables are left for the overlap resolver.
const orphanColumnWidth = 200.0

// placeOrphans moves tables that no relationship touches into a grid below
// the connected layout, filling rows left to right in declaration order.
// It returns the number of orphans placed.
func placeOrphans(a *arena, b Bounds, s Settings) int {
	var orphans []int
	bottom := math.Inf(-1)
	for i := range a.len() {
		if !a.touched[i] {
			orphans = append(orphans, i)
			continue
		}
		bottom = math.Max(bottom, a.pos[i].y+a.dims[i].Height)
	}
	if len(orphans) == 0 {
		return 0
	}

	pad := s.BoundaryPadding
	startY := pad
	if !math.IsInf(bottom, -1) {
		startY = bottom + s.OrphanPadding
	}

	pitch := orphanColumnWidth + s.MinTableDistance
	cols := max(1, int(math.Floor((b.Width-2*pad)/pitch)))

	y, rowHeight := startY, 0.0
	for n, i := range orphans {
		col := n % cols
		if col == 0 && n > 0 {
			y += rowHeight + s.MinTableDistance
			rowHeight = 0
		}
		a.pos[i] = vec{x: pad + float64(col)*pitch, y: y}
		rowHeight = math.Max(rowHeight, a.dims[i].Height)
	}
	return len(orphans)
}

// settleOrphans restores the orphan band after overlap resolution, which can
// push connected tables into it or lift orphans out of it. When any orphan
// starts at or above the lowest connected bottom edge, every orphan moves
// down by the same amount so the topmost one sits orphanPadding (at least
// one unit) below that edge. Orphans keep their relative positions, so
// collisions already resolved among them stay resolved. It returns the
// distance moved.
func settleOrphans(a *arena, s Settings) float64 {
	bottom, top := math.Inf(-1), math.Inf(1)
	for i := range a.len() {
		if a.touched[i] {
			bottom = math.Max(bottom, a.pos[i].y+a.dims[i].Height)
		} else {
			top = math.Min(top, a.pos[i].y)
		}
	}
	if math.IsInf(bottom, -1) || math.IsInf(top, 1) || top > bottom {
		return 0
	}

	shift := bottom + max(s.OrphanPadding, 1) - top
	for i := range a.len() {
		if !a.touched[i] {
			a.translate(i, 0, shift)
		}
	}
	return shift
}
