package layout

import "math"

// Efficiency weights: overlaps cost up to 60 points, crossings up to 40.
const (
	overlapPenalty  = 60.0
	crossingPenalty = 40.0
)

// countOverlaps returns the number of table pairs whose rectangles share a
// positive area. Touching edges do not count.
func countOverlaps(a *arena) int {
	overlaps := 0
	for i := range a.len() {
		for j := i + 1; j < a.len(); j++ {
			if ox, oy, _, _ := axisOverlaps(a, i, j, 0); ox > 0 && oy > 0 {
				overlaps++
			}
		}
	}
	return overlaps
}

// Efficiency scores a layout from 0 to 100. Overlaps are measured against
// every possible table pair, crossings against every possible relationship
// pair.
func Efficiency(tables, relationships, overlaps, crossings int) int {
	if tables == 0 {
		return 100
	}

	overlapRatio := 0.0
	if pairs := tables * (tables - 1) / 2; pairs > 0 {
		overlapRatio = math.Min(1, float64(overlaps)/float64(pairs))
	}
	crossingPairs := max(1, relationships*(relationships-1)/2)
	crossingRatio := math.Min(1, float64(crossings)/float64(crossingPairs))

	penalty := overlapPenalty*overlapRatio + crossingPenalty*crossingRatio
	return int(math.Round(math.Max(0, 100-penalty)))
}

func score(a *arena, s Settings, clusters, relationships int) Statistics {
	st := Statistics{
		TotalTables:        a.len(),
		TotalRelationships: relationships,
		TotalClusters:      clusters,
		Overlaps:           countOverlaps(a),
	}
	if s.CountCrossings {
		st.Crossings = countCrossings(a)
	}
	st.LayoutEfficiency = Efficiency(st.TotalTables, st.TotalRelationships, st.Overlaps, st.Crossings)
	return st
}
