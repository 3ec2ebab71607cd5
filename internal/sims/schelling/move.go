package schelling

// Move is a tentative relocation of one household into a vacant cell. The
// city already reflects the move while it is pending; it must be finished
// with exactly one call to Commit or Revert.
type Move struct {
	city     *City
	from, to Location
	done     bool
}

// TryMove applies the relocation from -> to and returns it as a pending Move.
// from must be occupied and to vacant.
func (c *City) TryMove(from, to Location) *Move {
	if c.At(from) == Vacant {
		faultf("move from vacant cell %v", from)
	}
	c.Swap(from, to)
	return &Move{city: c, from: from, to: to}
}

// From returns the household's original location.
func (m *Move) From() Location { return m.from }

// To returns the tentative destination.
func (m *Move) To() Location { return m.to }

// Pending reports whether the move still awaits Commit or Revert.
func (m *Move) Pending() bool { return !m.done }

// Commit keeps the household at the destination.
func (m *Move) Commit() {
	m.finish()
}

// Revert puts the household back at its original location, leaving both
// cells exactly as they were before TryMove.
func (m *Move) Revert() {
	m.finish()
	m.city.Swap(m.to, m.from)
}

func (m *Move) finish() {
	if m.done {
		faultf("move %v -> %v already finished", m.from, m.to)
	}
	m.done = true
}

// Relocate runs one household's housing search. A household that is already
// satisfied stays put. Otherwise it visits the homes for sale in order and
// settles in the patience-th satisfactory home it sees; if the list runs out
// first it stays where it is and nothing changes. It reports whether the
// household moved.
func Relocate(c *City, r int, loc Location, rng Range, patience int, v *Vacancies) bool {
	_, moved := relocate(c, r, loc, rng, patience, v)
	return moved
}

func relocate(c *City, r int, loc Location, rng Range, patience int, v *Vacancies) (Location, bool) {
	if patience < 1 {
		faultf("patience must be positive, got %d", patience)
	}
	if IsSatisfied(c, r, loc, rng) {
		return loc, false
	}
	remaining := patience
	for _, home := range v.locs {
		mv := c.TryMove(loc, home)
		if IsSatisfied(c, r, home, rng) {
			remaining--
			if remaining == 0 {
				mv.Commit()
				v.Promote(c, loc, home)
				return home, true
			}
		}
		mv.Revert()
	}
	return loc, false
}
