package schelling

// Range is an inclusive band of acceptable similarity scores.
type Range struct {
	Lower float64
	Upper float64
}

// Contains reports whether lower <= score <= upper.
func (r Range) Contains(score float64) bool {
	return score >= r.Lower && score <= r.Upper
}

// Similarity returns the share of occupied cells within Manhattan distance r
// of loc that hold the same household type as loc. The household at loc is
// counted in both the numerator and the denominator, so the score is never
// below 1/occupied.
func Similarity(c *City, r int, loc Location) float64 {
	self := c.At(loc)
	if self == Vacant {
		faultf("similarity requested for vacant cell %v", loc)
	}
	occupied, similar := 0, 0
	n := c.n
	for k := max(0, loc.Row-r); k <= min(n-1, loc.Row+r); k++ {
		for l := max(0, loc.Col-r); l <= min(n-1, loc.Col+r); l++ {
			if abs(loc.Row-k)+abs(loc.Col-l) > r {
				continue
			}
			h := Household(c.grid.At(l, k))
			if h == Vacant {
				continue
			}
			occupied++
			if h == self {
				similar++
			}
		}
	}
	if occupied == 0 {
		faultf("no occupied cells around %v", loc)
	}
	return float64(similar) / float64(occupied)
}

// IsSatisfied reports whether the household at loc has a similarity score
// inside rng.
func IsSatisfied(c *City, r int, loc Location, rng Range) bool {
	return rng.Contains(Similarity(c, r, loc))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
