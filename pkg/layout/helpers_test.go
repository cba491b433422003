package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

// tbl builds a table with n short int columns.
func tbl(name string, n int) schema.Table {
	t := schema.Table{Name: name}
	for i := range n {
		t.Columns = append(t.Columns, schema.Column{Name: "c" + string(rune('a'+i)), Type: "int"})
	}
	return t
}

func rel(from, to string) schema.Relationship {
	return schema.Relationship{
		From: schema.Endpoint{Table: from, Column: to + "_id"},
		To:   schema.Endpoint{Table: to, Column: "id"},
	}
}

// measuredArena builds an arena with dimensions filled in.
func measuredArena(s schema.Schema) *arena {
	a := newArena(s)
	measureAll(a, s.Tables)
	return a
}

func clusterNames(a *arena, clusters [][]int) [][]string {
	out := make([][]string, len(clusters))
	for i, c := range clusters {
		for _, m := range c {
			out[i] = append(out[i], a.names[m])
		}
	}
	return out
}

func assertFinite(t *testing.T, a *arena) {
	t.Helper()
	for i := range a.len() {
		p := a.pos[i]
		if math.IsNaN(p.x) || math.IsNaN(p.y) || math.IsInf(p.x, 0) || math.IsInf(p.y, 0) {
			t.Fatalf("table %s has non-finite position (%v, %v)", a.names[i], p.x, p.y)
		}
	}
}
