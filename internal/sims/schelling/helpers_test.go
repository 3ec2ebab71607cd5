package schelling

import (
	"errors"
	"strings"
	"testing"
)

// cityOf builds a city from compact rows such as "MBF".
func cityOf(t *testing.T, rows ...string) *City {
	t.Helper()
	grid := make([][]Household, len(rows))
	for r, row := range rows {
		for _, ch := range row {
			h, ok := ParseHousehold(string(ch))
			if !ok {
				t.Fatalf("bad tag %q in row %d", ch, r)
			}
			grid[r] = append(grid[r], h)
		}
	}
	c, err := CityFromRows(grid)
	if err != nil {
		t.Fatalf("CityFromRows: %v", err)
	}
	return c
}

func render(c *City) string {
	var b strings.Builder
	for r, row := range c.Rows() {
		if r > 0 {
			b.WriteByte(' ')
		}
		for _, h := range row {
			b.WriteString(h.String())
		}
	}
	return b.String()
}

func expectFault(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		v := recover()
		if v == nil {
			t.Fatal("expected a precondition fault")
		}
		var pe *PreconditionError
		err, ok := v.(error)
		if !ok || !errors.As(err, &pe) {
			t.Fatalf("expected *PreconditionError panic, got %v", v)
		}
	}()
	fn()
}

func loc(row, col int) Location { return Location{Row: row, Col: col} }
