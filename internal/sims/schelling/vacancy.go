package schelling

// Vacancies is the ordered list of homes for sale. Searches walk it front to
// back, so the most recently vacated homes are tried first.
type Vacancies struct {
	locs []Location
}

// NewVacancies collects the vacant cells of c in row-major order.
func NewVacancies(c *City) *Vacancies {
	v := &Vacancies{}
	for row := 0; row < c.n; row++ {
		for col := 0; col < c.n; col++ {
			loc := Location{Row: row, Col: col}
			if c.At(loc) == Vacant {
				v.locs = append(v.locs, loc)
			}
		}
	}
	return v
}

// Len returns the number of homes for sale.
func (v *Vacancies) Len() int { return len(v.locs) }

// List returns a copy of the current order.
func (v *Vacancies) List() []Location {
	return append([]Location(nil), v.locs...)
}

// Promote records a committed relocation: vacated goes to the front of the
// list and filled is removed. Both must already agree with the city.
func (v *Vacancies) Promote(c *City, vacated, filled Location) {
	if c.At(vacated) != Vacant {
		faultf("promote: vacated cell %v is occupied", vacated)
	}
	if c.At(filled) == Vacant {
		faultf("promote: filled cell %v is still vacant", filled)
	}
	idx := -1
	for i, loc := range v.locs {
		if loc == filled {
			idx = i
			break
		}
	}
	if idx < 0 {
		faultf("promote: %v is not for sale", filled)
	}
	// Shift [0, idx) right by one and drop filled in the same pass.
	copy(v.locs[1:idx+1], v.locs[:idx])
	v.locs[0] = vacated
}
