package schelling

import (
	"fmt"

	"schelling/internal/core"
)

// Household enumerates the cell states of the city grid.
type Household uint8

const (
	Vacant Household = iota
	TypeA
	TypeB
)

// Households lists the occupied household types in wave order.
var Households = [...]Household{TypeA, TypeB}

// String returns the single-letter tag used in grid files: M (maroon) for
// TypeA, B (blue) for TypeB and F (for sale) for vacant cells.
func (h Household) String() string {
	switch h {
	case Vacant:
		return "F"
	case TypeA:
		return "M"
	case TypeB:
		return "B"
	}
	return fmt.Sprintf("Household(%d)", uint8(h))
}

// ParseHousehold maps a grid-file tag back to a Household.
func ParseHousehold(tag string) (Household, bool) {
	switch tag {
	case "F":
		return Vacant, true
	case "M":
		return TypeA, true
	case "B":
		return TypeB, true
	}
	return Vacant, false
}

// Location addresses a single cell of the city.
type Location struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (l Location) String() string { return fmt.Sprintf("(%d, %d)", l.Row, l.Col) }

// City is a square N x N grid of households. It is mutated in place by the
// simulation and is not safe for concurrent use.
type City struct {
	n    int
	grid *core.ByteGrid
}

// NewCity allocates an all-vacant city with side n.
func NewCity(n int) *City {
	if n <= 0 {
		n = 1
	}
	return &City{n: n, grid: core.NewByteGrid(n, n)}
}

// CityFromRows builds a city from square rows of households.
func CityFromRows(rows [][]Household) (*City, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("city must have at least one row")
	}
	c := NewCity(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), n)
		}
		for col, h := range row {
			if h > TypeB {
				return nil, fmt.Errorf("row %d col %d: invalid household %d", r, col, h)
			}
			c.grid.Set(col, r, uint8(h))
		}
	}
	return c, nil
}

// Size returns the side length N.
func (c *City) Size() int { return c.n }

// In reports whether loc addresses a cell of the city.
func (c *City) In(loc Location) bool { return c.grid.In(loc.Col, loc.Row) }

// At returns the household at loc. Out-of-bounds access is a precondition fault.
func (c *City) At(loc Location) Household {
	c.mustContain(loc)
	return Household(c.grid.At(loc.Col, loc.Row))
}

// Set stores h at loc.
func (c *City) Set(loc Location, h Household) {
	c.mustContain(loc)
	c.grid.Set(loc.Col, loc.Row, uint8(h))
}

// Cells exposes the row-major backing buffer.
func (c *City) Cells() []uint8 { return c.grid.Cells() }

// Rows returns a copy of the city as rows of households.
func (c *City) Rows() [][]Household {
	rows := make([][]Household, c.n)
	for r := range rows {
		rows[r] = make([]Household, c.n)
		for col := range rows[r] {
			rows[r][col] = Household(c.grid.At(col, r))
		}
	}
	return rows
}

// Clone returns an independent copy of the city.
func (c *City) Clone() *City {
	return &City{n: c.n, grid: c.grid.Clone()}
}

// Equal reports whether both cities hold the same households.
func (c *City) Equal(o *City) bool {
	if c.n != o.n {
		return false
	}
	a, b := c.grid.Cells(), o.grid.Cells()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Count returns the number of cells holding each household state, indexed
// by Household.
func (c *City) Count() [3]int {
	var counts [3]int
	for _, v := range c.grid.Cells() {
		counts[v]++
	}
	return counts
}

// Swap moves the occupant of one location into the other. Exactly one of the
// two locations must be vacant; the occupied cell becomes vacant afterwards.
func (c *City) Swap(a, b Location) {
	ha, hb := c.At(a), c.At(b)
	switch {
	case ha != Vacant && hb == Vacant:
		c.Set(b, ha)
		c.Set(a, Vacant)
	case ha == Vacant && hb != Vacant:
		c.Set(a, hb)
		c.Set(b, Vacant)
	default:
		faultf("swap %v <-> %v needs exactly one vacant cell, got %v and %v", a, b, ha, hb)
	}
}

func (c *City) mustContain(loc Location) {
	if !c.In(loc) {
		faultf("location %v outside %dx%d city", loc, c.n, c.n)
	}
}
