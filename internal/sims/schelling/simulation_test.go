package schelling

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

var fiveByFive = []string{"MMBFB", "BFMMB", "FBMBF", "MBFMM", "BMBFB"}

func TestRunSimulationMatchesReferenceRuns(t *testing.T) {
	cases := []struct {
		name      string
		params    Params
		total     int
		perStep   [][2]int
		outcome   Outcome
		city      string
		vacancies []Location
	}{
		{
			name:      "patience three converges",
			params:    Params{Radius: 1, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 3, MaxSteps: 10},
			total:     4,
			perStep:   [][2]int{{4, 0}, {0, 0}},
			outcome:   Converged,
			city:      "MMBFB BMFFB MBFBM MBMFM BMBFB",
			vacancies: []Location{loc(3, 3), loc(2, 2), loc(1, 3), loc(1, 2), loc(0, 3), loc(4, 3)},
		},
		{
			name:      "patience one single step",
			params:    Params{Radius: 1, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 1, MaxSteps: 1},
			total:     8,
			perStep:   [][2]int{{4, 4}},
			outcome:   StepLimitReached,
			city:      "MMFMB BMMMB FBMBB FFBMM BFFBB",
			vacancies: []Location{loc(4, 2), loc(3, 1), loc(0, 2), loc(4, 1), loc(3, 0), loc(2, 0)},
		},
		{
			name:    "wide radius",
			params:  Params{Radius: 2, Range: Range{Lower: 0.5, Upper: 1}, Patience: 2, MaxSteps: 20},
			total:   11,
			perStep: [][2]int{{4, 6}, {1, 0}, {0, 0}},
			outcome: Converged,
			city:    "MFBBB FBBBB MFBBB MFMMM FMMMF",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := cityOf(t, fiveByFive...)
			sim := NewSimulation(c, tc.params)
			res := sim.Run()
			if res.Relocations != tc.total {
				t.Fatalf("relocations = %d, want %d", res.Relocations, tc.total)
			}
			if res.Steps != len(tc.perStep) {
				t.Fatalf("steps = %d, want %d", res.Steps, len(tc.perStep))
			}
			for i, want := range tc.perStep {
				got := res.PerStep[i]
				if got.ByType[TypeA] != want[0] || got.ByType[TypeB] != want[1] {
					t.Fatalf("step %d moved A=%d B=%d, want %v", i, got.ByType[TypeA], got.ByType[TypeB], want)
				}
			}
			if res.Outcome != tc.outcome {
				t.Fatalf("outcome = %v, want %v", res.Outcome, tc.outcome)
			}
			if got := render(c); got != tc.city {
				t.Fatalf("city = %q, want %q", got, tc.city)
			}
			if tc.vacancies != nil && !slices.Equal(sim.Vacancies().List(), tc.vacancies) {
				t.Fatalf("vacancies = %v, want %v", sim.Vacancies().List(), tc.vacancies)
			}
		})
	}
}

func TestTwoByTwoStepIsDeterministic(t *testing.T) {
	p := Params{Radius: 2, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 1, MaxSteps: 1}
	for i := 0; i < 3; i++ {
		c := cityOf(t, "MB", "FF")
		total, err := RunSimulation(c, p)
		if err != nil {
			t.Fatalf("RunSimulation: %v", err)
		}
		if total != 0 {
			t.Fatalf("run %d: relocations = %d, want 0", i, total)
		}
		if got := render(c); got != "MB FF" {
			t.Fatalf("run %d: city = %q", i, got)
		}
	}
}

func TestZeroMaxStepsLeavesCityUntouched(t *testing.T) {
	c := cityOf(t, fiveByFive...)
	before := c.Clone()
	res := NewSimulation(c, Params{Radius: 1, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 1}).Run()
	if res.Relocations != 0 || res.Steps != 0 {
		t.Fatalf("got %d relocations over %d steps, want none", res.Relocations, res.Steps)
	}
	if res.Outcome != StepLimitReached {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	if !c.Equal(before) {
		t.Fatal("city modified")
	}
}

func TestRunConservesHouseholds(t *testing.T) {
	w := NewWithConfig(Config{
		Size: 20, Seed: 11, VacancyRate: 0.12, ShareA: 0.55,
		Params: Params{Radius: 2, Range: Range{Lower: 0.45, Upper: 0.9}, Patience: 2, MaxSteps: 30},
	})
	before := w.City().Count()
	sim := w.Simulation()
	for i := 0; i < 30 && sim.Outcome() != Converged; i++ {
		sim.Step()
		if got := w.City().Count(); got != before {
			t.Fatalf("step %d: counts %v, want %v", i, got, before)
		}
		if sim.Vacancies().Len() != before[Vacant] {
			t.Fatalf("step %d: %d homes for sale, want %d", i, sim.Vacancies().Len(), before[Vacant])
		}
		for _, l := range sim.Vacancies().List() {
			if w.City().At(l) != Vacant {
				t.Fatalf("step %d: listed home %v is occupied", i, l)
			}
		}
	}
}

func TestConvergedCityStaysConverged(t *testing.T) {
	p := Params{Radius: 1, Range: Range{Lower: 0.3, Upper: 1}, Patience: 2, MaxSteps: 200}
	w := NewWithConfig(Config{Size: 16, Seed: 5, VacancyRate: 0.2, ShareA: 0.5, Params: p})
	res := w.Simulation().Run()
	if res.Outcome != Converged {
		t.Skipf("did not converge within %d steps", p.MaxSteps)
	}
	settled := w.City().Clone()
	again, err := RunSimulation(settled, p)
	if err != nil {
		t.Fatalf("RunSimulation: %v", err)
	}
	if again != 0 {
		t.Fatalf("second run moved %d households", again)
	}
	if !settled.Equal(w.City()) {
		t.Fatal("second run changed the city")
	}
}

func TestPatienceOneTakesFirstSatisfactoryHome(t *testing.T) {
	c := cityOf(t, "MBF", "BBF", "FBF")
	v := NewVacancies(c)
	first := Location{-1, -1}
	rng := Range{Lower: 0.5, Upper: 1}
	for _, home := range v.List() {
		mv := c.TryMove(loc(0, 0), home)
		ok := IsSatisfied(c, 1, home, rng)
		mv.Revert()
		if ok {
			first = home
			break
		}
	}
	if !Relocate(c, 1, loc(0, 0), rng, 1, v) {
		t.Fatal("expected relocation")
	}
	if c.At(first) != TypeA {
		t.Fatalf("household did not settle in first satisfactory home %v: %q", first, render(c))
	}
}

func TestRunWaveOnlyMovesRequestedType(t *testing.T) {
	c := cityOf(t, fiveByFive...)
	v := NewVacancies(c)
	bBefore := map[Location]bool{}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if c.At(loc(row, col)) == TypeB {
				bBefore[loc(row, col)] = true
			}
		}
	}
	if moved := RunWave(c, 1, Range{Lower: 0.4, Upper: 0.7}, 3, v, TypeA); moved != 4 {
		t.Fatalf("moved = %d, want 4", moved)
	}
	for l := range bBefore {
		if c.At(l) != TypeB {
			t.Fatalf("TypeB household at %v moved during TypeA wave", l)
		}
	}
	expectFault(t, func() { RunWave(c, 1, Range{Upper: 1}, 1, v, Vacant) })
}

func TestObserverSeesEveryRelocation(t *testing.T) {
	c := cityOf(t, fiveByFive...)
	var seen []Relocation
	sim := NewSimulation(c, Params{Radius: 1, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 1, MaxSteps: 1},
		WithObserver(func(r Relocation) { seen = append(seen, r) }))
	res := sim.Run()
	if len(seen) != res.Relocations {
		t.Fatalf("observed %d relocations, run reported %d", len(seen), res.Relocations)
	}
	if seen[0].Household != TypeA || seen[len(seen)-1].Household != TypeB {
		t.Fatalf("waves out of order: first %v last %v", seen[0].Household, seen[len(seen)-1].Household)
	}
}

func TestRunLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := cityOf(t, fiveByFive...)
	NewSimulation(c, Params{Radius: 1, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 3, MaxSteps: 10}, WithLogger(logger)).Run()
	out := buf.String()
	if strings.Count(out, "step finished") != 2 {
		t.Fatalf("expected two step records, got:\n%s", out)
	}
	if !strings.Contains(out, "outcome=converged") {
		t.Fatalf("missing outcome in:\n%s", out)
	}
}

func TestRunSimulationRejectsBadParams(t *testing.T) {
	good := Params{Radius: 1, Range: Range{Lower: 0.4, Upper: 0.7}, Patience: 1, MaxSteps: 1}
	bad := map[string]func(p *Params){
		"negative radius": func(p *Params) { p.Radius = -1 },
		"inverted range":  func(p *Params) { p.Range = Range{Lower: 0.8, Upper: 0.2} },
		"upper above one": func(p *Params) { p.Range.Upper = 1.5 },
		"zero patience":   func(p *Params) { p.Patience = 0 },
		"zero max steps":  func(p *Params) { p.MaxSteps = 0 },
		"negative steps":  func(p *Params) { p.MaxSteps = -3 },
	}
	for name, mutate := range bad {
		p := good
		mutate(&p)
		c := cityOf(t, fiveByFive...)
		before := c.Clone()
		_, err := RunSimulation(c, p)
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: err = %v, want ErrConfiguration", name, err)
		}
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: err %T is not *ConfigError", name, err)
		}
		if !c.Equal(before) {
			t.Fatalf("%s: city modified", name)
		}
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
}
