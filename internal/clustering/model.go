package clustering

import "github.com/streamfit/streamfit/internal/space"

// Model owns the ball graph and the Space it was built with, and exposes
// the radius-normalized distance D(point, ball) = dist(point, ball.center)
// / ball.radius that the fit algorithm uses to find the nearest balls to an
// incoming point.
type Model[P any] struct {
	graph *Graph[P]
	space space.Space[P]
}

// NewModel returns an empty Model over the given Space.
func NewModel[P any](sp space.Space[P]) *Model[P] {
	return &Model[P]{graph: NewGraph[P](), space: sp}
}

// normDist is D(point, ball) for the ball named by r: dist(point,
// ball.center) scaled by the ball's own (native-units) radius.
func (m *Model[P]) normDist(point P, r Ref) float64 {
	b := m.graph.Data(r)
	return m.space.Dist(point, b.center) / b.radius
}

// Neighborhood returns up to two node refs nearest to point under D.
func (m *Model[P]) Neighborhood(point P) []Pair[Ref] {
	refs := m.graph.Iter()
	return NearestTwo(refs, func(r Ref) float64 { return m.normDist(point, r) })
}

// AddBall delegates to the graph.
func (m *Model[P]) AddBall(b Ball[P], neighbors []Ref) Ref {
	return m.graph.Add(b, neighbors)
}

// IterBalls exposes every live ball, read-only, in insertion order.
func (m *Model[P]) IterBalls() []Ball[P] {
	refs := m.graph.Iter()
	out := make([]Ball[P], 0, len(refs))
	for _, r := range refs {
		out = append(out, *m.graph.Data(r))
	}
	return out
}

// Len reports how many balls are currently live.
func (m *Model[P]) Len() int { return m.graph.Len() }

// Retain delegates to the graph.
func (m *Model[P]) Retain(keep func(Ball[P]) bool) {
	m.graph.Retain(keep)
}

// Load ingests a bare list of balls and, for each one, recomputes its
// neighbor list from scratch by running Neighborhood over every other ball
// and keeping the two nearest. This reconstructs the neighbor cache from
// cold state; it is the fixed point load(serialize(model)) converges to,
// not a preserved cache.
func Load[P any](sp space.Space[P], balls []Ball[P]) *Model[P] {
	m := NewModel[P](sp)

	refs := make([]Ref, len(balls))
	for i, b := range balls {
		refs[i] = m.graph.Add(b, nil)
	}

	for i, r := range refs {
		others := make([]Ref, 0, len(refs)-1)
		for j, other := range refs {
			if j != i {
				others = append(others, other)
			}
		}
		pairs := NearestTwo(others, func(o Ref) float64 {
			return m.normDist(balls[i].center, o)
		})
		neighbors := make([]Ref, len(pairs))
		for k, p := range pairs {
			neighbors[k] = p.Candidate
		}
		m.graph.SetNeighbors(r, neighbors)
	}

	return m
}
