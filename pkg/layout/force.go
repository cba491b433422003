package layout

import "math"

const (
	// boundaryStiffness scales the pull back inside the padded canvas per
	// unit of penetration depth.
	boundaryStiffness = 0.5

	// convergenceSpeed is the mean speed below which the system is at rest.
	convergenceSpeed = 0.1

	// minForceDistance floors center distances so that coincident tables
	// cannot produce unbounded forces.
	minForceDistance = 1.0
)

// simulation reports how the force simulation ended.
type simulation struct {
	iterations int
	converged  bool
}

// simulate runs the force-directed relaxation: every pair of tables repels,
// every relationship acts as a spring toward its ideal length, and tables
// outside the padded canvas are pushed back in. Velocities are damped each
// step. The loop stops when the mean speed falls below convergenceSpeed or
// after MaxIterations steps.
func simulate(a *arena, b Bounds, s Settings) simulation {
	for i := range a.len() {
		a.force[i] = vec{}
		a.vel[i] = vec{}
	}

	var sim simulation
	if a.len() == 0 {
		sim.converged = true
		return sim
	}

	for sim.iterations < s.MaxIterations {
		sim.iterations++
		for i := range a.force {
			a.force[i] = vec{}
		}

		applyRepulsion(a, s)
		applyAttraction(a, s)
		applyBoundary(a, b, s)

		var speed float64
		for i := range a.len() {
			a.vel[i].x = (a.vel[i].x + a.force[i].x) * s.DampingFactor
			a.vel[i].y = (a.vel[i].y + a.force[i].y) * s.DampingFactor
			a.translate(i, a.vel[i].x, a.vel[i].y)
			speed += math.Hypot(a.vel[i].x, a.vel[i].y)
		}

		if speed/float64(a.len()) < convergenceSpeed {
			sim.converged = true
			break
		}
	}
	return sim
}

// separation returns the unit direction from i to j and their center
// distance, floored at minForceDistance. Coincident centers yield a zero
// direction, which means no force.
func separation(a *arena, i, j int) (dir vec, dist float64) {
	ci, cj := a.center(i), a.center(j)
	dx, dy := cj.x-ci.x, cj.y-ci.y
	dist = math.Max(math.Hypot(dx, dy), minForceDistance)
	return vec{x: dx / dist, y: dy / dist}, dist
}

func applyRepulsion(a *arena, s Settings) {
	for i := range a.len() {
		for j := i + 1; j < a.len(); j++ {
			dir, dist := separation(a, i, j)
			f := s.RepulsionForce / (dist * dist)
			a.force[i].x -= f * dir.x
			a.force[i].y -= f * dir.y
			a.force[j].x += f * dir.x
			a.force[j].y += f * dir.y
		}
	}
}

// applyAttraction treats each relationship as a spring whose rest length
// leaves minConnectionDistance between the two boxes. Stretched springs pull,
// compressed springs push.
func applyAttraction(a *arena, s Settings) {
	for _, e := range a.edges {
		dir, dist := separation(a, e.from, e.to)
		ideal := (a.dims[e.from].Width+a.dims[e.to].Width)/2 + s.MinConnectionDistance
		f := s.AttractionForce * (dist - ideal)
		a.force[e.from].x += f * dir.x
		a.force[e.from].y += f * dir.y
		a.force[e.to].x -= f * dir.x
		a.force[e.to].y -= f * dir.y
	}
}

func applyBoundary(a *arena, b Bounds, s Settings) {
	minX, minY := s.BoundaryPadding, s.BoundaryPadding
	maxX, maxY := b.Width-s.BoundaryPadding, b.Height-s.BoundaryPadding

	for i := range a.len() {
		p, d := a.pos[i], a.dims[i]
		if p.x < minX {
			a.force[i].x += (minX - p.x) * boundaryStiffness
		}
		if right := p.x + d.Width; right > maxX {
			a.force[i].x -= (right - maxX) * boundaryStiffness
		}
		if p.y < minY {
			a.force[i].y += (minY - p.y) * boundaryStiffness
		}
		if bottom := p.y + d.Height; bottom > maxY {
			a.force[i].y -= (bottom - maxY) * boundaryStiffness
		}
	}
}
