package schelling

// Relocation describes one committed move.
type Relocation struct {
	Step      int       `json:"step"`
	Household Household `json:"-"`
	Type      string    `json:"type"`
	From      Location  `json:"from"`
	To        Location  `json:"to"`
}

// RunWave gives every household of type t a chance to relocate, visiting
// cells in row-major order. The city is read live, so a household that moved
// earlier in the wave is seen again if it landed on a cell not yet visited.
// It returns the number of households that moved.
func RunWave(c *City, r int, rng Range, patience int, v *Vacancies, t Household) int {
	return runWave(c, r, rng, patience, v, t, nil)
}

func runWave(c *City, r int, rng Range, patience int, v *Vacancies, t Household, observe func(from, to Location)) int {
	if t == Vacant {
		faultf("wave requested for vacant cells")
	}
	moved := 0
	for row := 0; row < c.n; row++ {
		for col := 0; col < c.n; col++ {
			loc := Location{Row: row, Col: col}
			if c.At(loc) != t {
				continue
			}
			to, ok := relocate(c, r, loc, rng, patience, v)
			if !ok {
				continue
			}
			moved++
			if observe != nil {
				observe(loc, to)
			}
		}
	}
	return moved
}
