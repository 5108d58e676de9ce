package clustering

// Tunable constants, at their reference values. The CLI may override them
// from config; the resulting Constants value is passed to every Fit call.
const (
	ExtraThreshold = 25.0
	IntraThreshold = 16.0
	MergeThreshold = 1.0
	DecayFactor    = 0.95
	DecayThreshold = 1e-2
)

// Constants holds the tunable values a Fit run is calibrated against.
// Overriding them is a deliberate behavior change: treat the reference
// values as the calibrated baseline, not as defaults to silently "fix".
type Constants struct {
	ExtraThreshold float64
	IntraThreshold float64
	MergeThreshold float64
	DecayFactor    float64
	DecayThreshold float64
}

// DefaultConstants returns the reference tunables.
func DefaultConstants() Constants {
	return Constants{
		ExtraThreshold: ExtraThreshold,
		IntraThreshold: IntraThreshold,
		MergeThreshold: MergeThreshold,
		DecayFactor:    DecayFactor,
		DecayThreshold: DecayThreshold,
	}
}

// Fit applies one point to the model: init / absorb / split, local neighbor
// refinement, pairwise merge, and the global decay/prune pass. It has no
// failure return — ill-defined inputs are caller bugs, not recoverable
// errors.
func Fit[P any](m *Model[P], point P, c Constants) {
	neighborhood := m.Neighborhood(point)

	if len(neighborhood) == 0 {
		// init: the sentinel must survive its own introduction, so no decay runs.
		m.AddBall(sentinelBall(point), nil)
		return
	}

	primary := neighborhood[0].Candidate
	pb := m.graph.Data(primary)
	d := m.space.Dist(point, pb.center)

	var vertex Ref
	var candidate Ref
	haveCandidate := false

	if d < c.IntraThreshold*pb.radius {
		vertex, candidate, haveCandidate = absorb(m, primary, pb, point, d, neighborhood)
	} else {
		vertex, candidate, haveCandidate = split(m, point, d, neighborhood, c)
	}

	if haveCandidate {
		refinePrimary(m, primary, candidate, c)
	}

	decayAndPrune(m, vertex, c)
}

// absorb updates primary in place with point. It returns the vertex the
// decay pass must skip and the candidate (the second-nearest ball to the
// point, if any) to refine against.
func absorb[P any](m *Model[P], primary Ref, pb *Ball[P], point P, d float64, neighborhood []Pair[Ref]) (vertex, candidate Ref, haveCandidate bool) {
	newCenter := m.space.Combine(pb.center, pb.mass, point, 1)

	var newRadius float64
	if pb.mass == 0 {
		newRadius = d
	} else {
		newRadius = (pb.radius*pb.mass + d) / (pb.mass + 1)
	}

	pb.center = newCenter
	pb.radius = newRadius
	pb.mass = pb.mass + 1

	vertex = primary
	if len(neighborhood) > 1 {
		candidate = neighborhood[1].Candidate
		haveCandidate = true
	}
	return vertex, candidate, haveCandidate
}

// split creates a new ball seeded away from the primary. The new ball
// announces itself as a refinement candidate against the
// original primary — it does not become the primary of this fit step.
func split[P any](m *Model[P], point P, d float64, neighborhood []Pair[Ref], c Constants) (vertex, candidate Ref, haveCandidate bool) {
	primary := m.graph.Data(neighborhood[0].Candidate)

	newCenter := m.space.Combine(primary.center, -1, point, 5)
	nb := NewBall(newCenter, d/c.ExtraThreshold, 1.0)

	initial := make([]Ref, len(neighborhood))
	for i, p := range neighborhood {
		initial[i] = p.Candidate
	}

	ref := m.AddBall(nb, initial)
	return ref, ref, true
}

// refinePrimary refreshes primary's neighbor cache against candidate, then
// attempts a merge against whatever ends up first in the refreshed list.
// The neighbor list is copied to a local buffer before any structural
// change: the underlying storage is free to be rewritten without aliasing
// the slice we're reading.
func refinePrimary[P any](m *Model[P], primary, candidate Ref, c Constants) {
	pb := m.graph.Data(primary)
	L := append([]Ref(nil), m.graph.Neighbors(primary)...)

	distToPrimary := func(r Ref) float64 {
		return m.space.Dist(m.graph.Data(r).center, pb.center)
	}
	cd := distToPrimary(candidate)

	for i := 0; i < MaxNeighbors; i++ {
		if i == len(L) {
			L = append(L, candidate)
			break
		}
		if L[i] == candidate {
			break
		}
		if distToPrimary(L[i]) > cd {
			L = append(L, noRef)
			copy(L[i+1:], L[i:])
			L[i] = candidate
			break
		}
	}

	if len(L) > 0 {
		other := L[0]
		ob := m.graph.Data(other)
		d12 := m.space.Dist(pb.center, ob.center)

		if d12 < (pb.radius+ob.radius)*c.MergeThreshold {
			newCenter := m.space.Combine(pb.center, pb.mass, ob.center, ob.mass)
			newRadius := d12 + (pb.radius*pb.mass+ob.radius*ob.mass)/(pb.mass+ob.mass)

			pb.center = newCenter
			pb.radius = newRadius
			pb.mass = pb.mass + ob.mass
			ob.mass = 0

			L = L[1:]
		}
	}

	if len(L) > MaxNeighbors {
		L = L[:MaxNeighbors]
	}

	m.graph.SetNeighbors(primary, L)
}

// decayAndPrune: every ball but vertex decays multiplicatively, then
// anything at or below DecayThreshold is pruned.
// "Is this vertex" is a Ref comparison, i.e. by graph identity, not value.
func decayAndPrune[P any](m *Model[P], vertex Ref, c Constants) {
	for _, r := range m.graph.Iter() {
		if r == vertex {
			continue
		}
		b := m.graph.Data(r)
		b.mass *= c.DecayFactor
	}

	m.graph.Retain(func(b Ball[P]) bool { return b.mass > c.DecayThreshold })
}
