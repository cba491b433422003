package layout

import "math"

// maxOverlapPasses caps the overlap resolver. Dense schemas on small canvases
// may have no overlap-free arrangement, so the cap is part of the contract.
const maxOverlapPasses = 200

// axisOverlaps returns how far tables i and j intrude into each other's
// margin on each axis. Both values are positive only when the padded
// rectangles intersect.
func axisOverlaps(a *arena, i, j int, margin float64) (ox, oy float64, ci, cj vec) {
	ci, cj = a.center(i), a.center(j)
	di, dj := a.dims[i], a.dims[j]
	ox = (di.Width+dj.Width)/2 + margin - math.Abs(cj.x-ci.x)
	oy = (di.Height+dj.Height)/2 + margin - math.Abs(cj.y-ci.y)
	return ox, oy, ci, cj
}

// resolveOverlaps separates colliding pairs until a full pass finds none or
// the pass cap is reached. Each collision is fixed along the axis needing the
// smaller push, split evenly between the two tables. It returns the number of
// passes run and whether the last pass was collision-free.
func resolveOverlaps(a *arena, s Settings) (passes int, resolved bool) {
	for passes < maxOverlapPasses {
		passes++
		collisions := 0

		for i := range a.len() {
			for j := i + 1; j < a.len(); j++ {
				ox, oy, ci, cj := axisOverlaps(a, i, j, s.MinTableDistance)
				if ox <= 0 || oy <= 0 {
					continue
				}
				collisions++

				if ox <= oy {
					shift := ox / 2
					if cj.x < ci.x {
						shift = -shift
					}
					a.translate(i, -shift, 0)
					a.translate(j, shift, 0)
				} else {
					shift := oy / 2
					if cj.y < ci.y {
						shift = -shift
					}
					a.translate(i, 0, -shift)
					a.translate(j, 0, shift)
				}
			}
		}

		if collisions == 0 {
			return passes, true
		}
	}
	return passes, false
}
