package schelling

import (
	"slices"
	"testing"
)

func TestMoveRevertRestoresCity(t *testing.T) {
	c := cityOf(t, "MBF", "BBF", "FFF")
	before := c.Clone()
	mv := c.TryMove(loc(0, 0), loc(2, 2))
	if c.At(loc(2, 2)) != TypeA || c.At(loc(0, 0)) != Vacant {
		t.Fatalf("tentative move not applied: %q", render(c))
	}
	if !mv.Pending() {
		t.Fatal("move should be pending before Commit/Revert")
	}
	mv.Revert()
	if !c.Equal(before) {
		t.Fatalf("revert left %q, want %q", render(c), render(before))
	}
	expectFault(t, mv.Revert)
	expectFault(t, mv.Commit)
}

func TestMoveCommitKeepsDestination(t *testing.T) {
	c := cityOf(t, "MF", "FF")
	mv := c.TryMove(loc(0, 0), loc(1, 1))
	mv.Commit()
	if got := render(c); got != "FF FM" {
		t.Fatalf("after commit got %q", got)
	}
	if mv.From() != loc(0, 0) || mv.To() != loc(1, 1) {
		t.Fatalf("move endpoints = %v -> %v", mv.From(), mv.To())
	}
}

func TestTryMoveFromVacantFaults(t *testing.T) {
	c := cityOf(t, "MF", "FF")
	expectFault(t, func() { c.TryMove(loc(0, 1), loc(1, 1)) })
}

func TestRelocateHonoursPatience(t *testing.T) {
	// Every home for sale satisfies the TypeA household at (0,0), so the
	// patience-th home in list order is chosen.
	cases := []struct {
		patience  int
		moved     bool
		city      string
		vacancies []Location
	}{
		{1, true, "FBM BBF FFF", []Location{loc(0, 0), loc(1, 2), loc(2, 0), loc(2, 1), loc(2, 2)}},
		{2, true, "FBF BBM FFF", []Location{loc(0, 0), loc(0, 2), loc(2, 0), loc(2, 1), loc(2, 2)}},
		{5, true, "FBF BBF FFM", []Location{loc(0, 0), loc(0, 2), loc(1, 2), loc(2, 0), loc(2, 1)}},
		{6, false, "MBF BBF FFF", []Location{loc(0, 2), loc(1, 2), loc(2, 0), loc(2, 1), loc(2, 2)}},
	}
	for _, tc := range cases {
		c := cityOf(t, "MBF", "BBF", "FFF")
		v := NewVacancies(c)
		moved := Relocate(c, 1, loc(0, 0), Range{Lower: 0.5, Upper: 1}, tc.patience, v)
		if moved != tc.moved {
			t.Fatalf("patience %d: moved = %v, want %v", tc.patience, moved, tc.moved)
		}
		if got := render(c); got != tc.city {
			t.Fatalf("patience %d: city = %q, want %q", tc.patience, got, tc.city)
		}
		if got := v.List(); !slices.Equal(got, tc.vacancies) {
			t.Fatalf("patience %d: vacancies = %v, want %v", tc.patience, got, tc.vacancies)
		}
	}
}

func TestRelocateSkipsUnsatisfactoryHomes(t *testing.T) {
	// (2,0) leaves the household with a score of 1/3 and does not count
	// against patience.
	c := cityOf(t, "MBF", "BBF", "FBF")
	v := NewVacancies(c)
	if !Relocate(c, 1, loc(0, 0), Range{Lower: 0.5, Upper: 1}, 3, v) {
		t.Fatal("expected relocation")
	}
	if got := render(c); got != "FBF BBF FBM" {
		t.Fatalf("city = %q", got)
	}
	want := []Location{loc(0, 0), loc(0, 2), loc(1, 2), loc(2, 0)}
	if got := v.List(); !slices.Equal(got, want) {
		t.Fatalf("vacancies = %v, want %v", got, want)
	}
}

func TestRelocateSatisfiedHouseholdStays(t *testing.T) {
	c := cityOf(t, "MMF", "BBF", "FFF")
	v := NewVacancies(c)
	before := v.List()
	if Relocate(c, 1, loc(0, 0), Range{Lower: 0.5, Upper: 1}, 1, v) {
		t.Fatal("satisfied household must not move")
	}
	if got := render(c); got != "MMF BBF FFF" {
		t.Fatalf("city changed to %q", got)
	}
	if !slices.Equal(before, v.List()) {
		t.Fatal("vacancies changed")
	}
}

func TestRelocatePreconditions(t *testing.T) {
	c := cityOf(t, "MBF", "BBF", "FFF")
	v := NewVacancies(c)
	expectFault(t, func() { Relocate(c, 1, loc(0, 0), Range{Lower: 0.5, Upper: 1}, 0, v) })
	expectFault(t, func() { Relocate(c, 1, loc(0, 2), Range{Lower: 0.5, Upper: 1}, 1, v) })
}
