package layout

import (
	"testing"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

func TestResolveOverlapsCoincident(t *testing.T) {
	a := measuredArena(schema.Schema{Tables: []schema.Table{tbl("a", 1), tbl("b", 1)}})
	a.pos[0] = vec{x: 100, y: 100}
	a.pos[1] = vec{x: 100, y: 100}

	// Overlaps are 260 on x and 125 on y; y is pushed, j toward positive.
	passes, resolved := resolveOverlaps(a, DefaultSettings())
	if !resolved || passes != 2 {
		t.Errorf("resolveOverlaps = (%d, %v), want (2, true)", passes, resolved)
	}
	if want := (vec{x: 100, y: 37.5}); a.pos[0] != want {
		t.Errorf("pos(a) = %v, want %v", a.pos[0], want)
	}
	if want := (vec{x: 100, y: 162.5}); a.pos[1] != want {
		t.Errorf("pos(b) = %v, want %v", a.pos[1], want)
	}
}

func TestResolveOverlapsSmallerAxis(t *testing.T) {
	a := measuredArena(schema.Schema{Tables: []schema.Table{tbl("a", 4), tbl("b", 4)}})
	a.pos[0] = vec{x: 100, y: 100}
	a.pos[1] = vec{x: 50, y: 110}

	// x overlap 210, y overlap 190: pushed vertically, b is below a.
	if _, resolved := resolveOverlaps(a, DefaultSettings()); !resolved {
		t.Fatal("overlaps not resolved")
	}
	if a.pos[0].x != 100 || a.pos[1].x != 50 {
		t.Errorf("x changed: %v, %v", a.pos[0], a.pos[1])
	}
	if gap := a.pos[1].y - (a.pos[0].y + 140); gap < 60-1e-9 {
		t.Errorf("vertical gap = %v, want at least 60", gap)
	}
}

func TestResolveOverlapsNoop(t *testing.T) {
	a := measuredArena(schema.Schema{Tables: []schema.Table{tbl("a", 1), tbl("b", 1)}})
	a.pos[0] = vec{x: 0, y: 0}
	a.pos[1] = vec{x: 260, y: 0}

	passes, resolved := resolveOverlaps(a, DefaultSettings())
	if !resolved || passes != 1 {
		t.Errorf("resolveOverlaps = (%d, %v), want (1, true)", passes, resolved)
	}
	if a.pos[1] != (vec{x: 260, y: 0}) {
		t.Errorf("non-colliding table moved to %v", a.pos[1])
	}
}

func TestResolveOverlapsCrowded(t *testing.T) {
	var tables []schema.Table
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		tables = append(tables, tbl(n, 2))
	}
	a := measuredArena(schema.Schema{Tables: tables})
	for i := range a.len() {
		a.pos[i] = vec{x: float64(i * 10), y: float64(i * 5)}
	}

	passes, resolved := resolveOverlaps(a, DefaultSettings())
	if passes > maxOverlapPasses {
		t.Errorf("passes = %d, exceeds cap", passes)
	}
	assertFinite(t, a)
	if resolved && countOverlaps(a) != 0 {
		t.Errorf("resolved but %d overlaps remain", countOverlaps(a))
	}
}
