package clustering

// Pair is one result of NearestTwo: a candidate together with its distance
// from the query target.
type Pair[C any] struct {
	Candidate C
	Dist      float64
}

// NearestTwo performs a one-pass stable selection: up to two candidates
// with the smallest distance, ascending, computed by
// maintaining a running best pair rather than sorting. Ties are broken in
// favor of the candidate seen first, which is what gives merge order its
// determinism.
func NearestTwo[C any](candidates []C, distance func(C) float64) []Pair[C] {
	var best [MaxNeighbors]Pair[C]
	n := 0

	for _, c := range candidates {
		d := distance(c)
		switch {
		case n == 0:
			best[0] = Pair[C]{c, d}
			n = 1
		case n == 1:
			if d < best[0].Dist {
				best[1] = best[0]
				best[0] = Pair[C]{c, d}
			} else {
				best[1] = Pair[C]{c, d}
			}
			n = 2
		default:
			if d < best[0].Dist {
				best[1] = best[0]
				best[0] = Pair[C]{c, d}
			} else if d < best[1].Dist {
				best[1] = Pair[C]{c, d}
			}
		}
	}

	return best[:n]
}
