package layout

import "math"

// Radial seed placement: a multi-table cluster starts on a circle whose
// radius is this share of the smaller region side.
const (
	radialShare  = 0.4
	radialShrink = 0.8
)

// placeInitial gives every cluster an equal cell of a square-ish grid inside
// the padded canvas. A singleton is centered in its cell; larger clusters are
// spread on a circle around the cell center, one table per angular step, so
// no two tables of a cluster start on the same point.
func placeInitial(a *arena, clusters [][]int, b Bounds, s Settings) {
	k := len(clusters)
	if k == 0 {
		return
	}

	cols := int(math.Ceil(math.Sqrt(float64(k))))
	rows := int(math.Ceil(float64(k) / float64(cols)))

	pad := s.BoundaryPadding
	regionW := (b.Width - 2*pad) / float64(cols)
	regionH := (b.Height - 2*pad) / float64(rows)

	for ci, members := range clusters {
		col, row := ci%cols, ci/cols
		cx := pad + float64(col)*regionW + regionW/2
		cy := pad + float64(row)*regionH + regionH/2

		if len(members) == 1 {
			centerOn(a, members[0], cx, cy)
			continue
		}

		radius := radialShare * math.Min(regionW, regionH) * radialShrink
		step := 2 * math.Pi / float64(len(members))
		for i, t := range members {
			angle := step * float64(i)
			centerOn(a, t, cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
		}
	}
}

// centerOn positions table i so that its center is (cx, cy).
func centerOn(a *arena, i int, cx, cy float64) {
	a.pos[i] = vec{
		x: cx - a.dims[i].Width/2,
		y: cy - a.dims[i].Height/2,
	}
}
