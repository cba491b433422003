package layout

import "github.com/matzehuels/erdlayout/pkg/schema"

// vec is a 2D vector used for positions, forces and velocities.
type vec struct{ x, y float64 }

// edge is a relationship between two distinct, declared tables, by index.
type edge struct{ from, to int }

// arena holds the working state of one calculation. Tables are addressed by
// their declaration index; every slice is parallel to names. The arena is
// created per call and never shared.
type arena struct {
	names   []string
	index   map[string]int // first declaration wins on duplicate names
	dims    []Dimension
	pos     []vec // top-left corners
	force   []vec
	vel     []vec
	edges   []edge // valid relationships in input order
	touched []bool // referenced by at least one relationship
}

func newArena(s schema.Schema) *arena {
	n := len(s.Tables)
	a := &arena{
		names:   make([]string, n),
		index:   make(map[string]int, n),
		dims:    make([]Dimension, n),
		pos:     make([]vec, n),
		force:   make([]vec, n),
		vel:     make([]vec, n),
		touched: make([]bool, n),
	}
	for i, t := range s.Tables {
		a.names[i] = t.Name
		if _, dup := a.index[t.Name]; !dup {
			a.index[t.Name] = i
		}
	}
	for _, r := range s.Relationships {
		from, fromOK := a.index[r.From.Table]
		to, toOK := a.index[r.To.Table]
		if fromOK {
			a.touched[from] = true
		}
		if toOK {
			a.touched[to] = true
		}
		if fromOK && toOK && from != to {
			a.edges = append(a.edges, edge{from: from, to: to})
		}
	}
	return a
}

func (a *arena) len() int { return len(a.names) }

// center returns the center point of table i.
func (a *arena) center(i int) vec {
	return vec{
		x: a.pos[i].x + a.dims[i].Width/2,
		y: a.pos[i].y + a.dims[i].Height/2,
	}
}

// translate moves table i by (dx, dy).
func (a *arena) translate(i int, dx, dy float64) {
	a.pos[i].x += dx
	a.pos[i].y += dy
}
