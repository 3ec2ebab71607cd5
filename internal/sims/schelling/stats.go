package schelling

// Stats summarises how settled and how segregated a city is.
type Stats struct {
	// Counts holds the number of cells per Household value.
	Counts [3]int
	// Satisfied holds the number of satisfied households per type.
	Satisfied [3]int
	// MeanSimilarity is the average similarity score per type, a simple
	// segregation index: 1 means every neighbor shares the household's type.
	MeanSimilarity [3]float64
}

// SatisfiedShare returns the fraction of occupied cells whose household is
// satisfied, or 1 for a city with no households.
func (s Stats) SatisfiedShare() float64 {
	occupied := s.Counts[TypeA] + s.Counts[TypeB]
	if occupied == 0 {
		return 1
	}
	return float64(s.Satisfied[TypeA]+s.Satisfied[TypeB]) / float64(occupied)
}

// ComputeStats evaluates every household of c under the given radius and range.
func ComputeStats(c *City, r int, rng Range) Stats {
	var s Stats
	var sums [3]float64
	for row := 0; row < c.n; row++ {
		for col := 0; col < c.n; col++ {
			loc := Location{Row: row, Col: col}
			h := c.At(loc)
			s.Counts[h]++
			if h == Vacant {
				continue
			}
			score := Similarity(c, r, loc)
			sums[h] += score
			if rng.Contains(score) {
				s.Satisfied[h]++
			}
		}
	}
	for _, t := range Households {
		if s.Counts[t] > 0 {
			s.MeanSimilarity[t] = sums[t] / float64(s.Counts[t])
		}
	}
	return s
}

// Segregation returns the household-weighted mean similarity over both types.
func (s Stats) Segregation() float64 {
	occupied := s.Counts[TypeA] + s.Counts[TypeB]
	if occupied == 0 {
		return 0
	}
	var sum float64
	for _, t := range Households {
		sum += s.MeanSimilarity[t] * float64(s.Counts[t])
	}
	return sum / float64(occupied)
}
