package layout

// countCrossings counts pairs of relationship lines that properly intersect.
// Lines run between table centers. Pairs sharing a table always meet at that
// table and are not counted; neither are collinear touches.
func countCrossings(a *arena) int {
	crossings := 0
	for i := range a.edges {
		e := a.edges[i]
		p1, p2 := a.center(e.from), a.center(e.to)
		for j := i + 1; j < len(a.edges); j++ {
			f := a.edges[j]
			if sharesEndpoint(e, f) {
				continue
			}
			if segmentsCross(p1, p2, a.center(f.from), a.center(f.to)) {
				crossings++
			}
		}
	}
	return crossings
}

func sharesEndpoint(e, f edge) bool {
	return e.from == f.from || e.from == f.to || e.to == f.from || e.to == f.to
}

// orientation returns the sign of the cross product (q-p) x (r-p).
func orientation(p, q, r vec) int {
	v := (q.x-p.x)*(r.y-p.y) - (q.y-p.y)*(r.x-p.x)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// segmentsCross reports whether segments p1p2 and q1q2 intersect at a single
// interior point.
func segmentsCross(p1, p2, q1, q2 vec) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)
	return o1*o2 < 0 && o3*o4 < 0
}
