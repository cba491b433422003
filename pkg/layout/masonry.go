package layout

import (
	"math"
	"slices"
)

// block is the bounding box of one cluster.
type block struct {
	members                []int
	minX, minY, maxX, maxY float64
}

func (b block) width() float64  { return b.maxX - b.minX }
func (b block) height() float64 { return b.maxY - b.minY }
func (b block) area() float64   { return b.width() * b.height() }

func boundingBlock(a *arena, members []int) block {
	bb := block{
		members: members,
		minX:    math.Inf(1),
		minY:    math.Inf(1),
		maxX:    math.Inf(-1),
		maxY:    math.Inf(-1),
	}
	for _, i := range members {
		p, d := a.pos[i], a.dims[i]
		bb.minX = math.Min(bb.minX, p.x)
		bb.minY = math.Min(bb.minY, p.y)
		bb.maxX = math.Max(bb.maxX, p.x+d.Width)
		bb.maxY = math.Max(bb.maxY, p.y+d.Height)
	}
	return bb
}

// packClusters replaces the loose simulated cluster positions with a masonry
// grid. Blocks are taken largest area first and each drops into the currently
// shortest column (leftmost on ties). A cluster moves as a rigid unit, so the
// relative arrangement found by the simulation is preserved.
func packClusters(a *arena, clusters [][]int, b Bounds, s Settings) {
	if len(clusters) == 0 {
		return
	}

	blocks := make([]block, 0, len(clusters))
	var totalWidth float64
	for _, members := range clusters {
		if len(members) == 0 {
			continue
		}
		bb := boundingBlock(a, members)
		blocks = append(blocks, bb)
		totalWidth += bb.width()
	}
	if len(blocks) == 0 {
		return
	}

	slices.SortStableFunc(blocks, func(x, y block) int {
		switch ax, ay := x.area(), y.area(); {
		case ax > ay:
			return -1
		case ax < ay:
			return 1
		}
		return 0
	})

	pad := s.BoundaryPadding
	pitch := totalWidth/float64(len(blocks)) + s.ClusterSeparation
	numColumns := 1
	if pitch > 0 {
		numColumns = max(1, int(math.Floor((b.Width-2*pad)/pitch)))
	}

	heights := make([]float64, numColumns)
	for c := range heights {
		heights[c] = pad
	}

	for _, bb := range blocks {
		col := 0
		for c := 1; c < numColumns; c++ {
			if heights[c] < heights[col] {
				col = c
			}
		}

		targetX := pad + float64(col)*pitch
		targetY := heights[col]
		dx, dy := targetX-bb.minX, targetY-bb.minY
		for _, i := range bb.members {
			a.translate(i, dx, dy)
		}
		heights[col] += bb.height() + s.ClusterSeparation
	}
}
