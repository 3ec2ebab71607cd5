// Package sweep runs many independent simulations of one starting city across
// a grid of relocation parameters.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"schelling/internal/sims/schelling"
)

// Result summarises one finished run.
type Result struct {
	Params         schelling.Params  `json:"-"`
	Radius         int               `json:"r"`
	SimLB          float64           `json:"sim_lb"`
	SimUB          float64           `json:"sim_ub"`
	Patience       int               `json:"patience"`
	Relocations    int               `json:"relocations"`
	Steps          int               `json:"steps"`
	Outcome        schelling.Outcome `json:"-"`
	OutcomeName    string            `json:"outcome"`
	SatisfiedShare float64           `json:"satisfied_share"`
	MeanSimilarity float64           `json:"mean_similarity"`
}

func (r Result) String() string {
	return fmt.Sprintf("r=%d range=[%.2f,%.2f] patience=%d", r.Radius, r.SimLB, r.SimUB, r.Patience)
}

// Grid expands every combination of radius, range and patience. Ranges are
// given as [lower, upper] pairs.
func Grid(radii []int, ranges []schelling.Range, patiences []int, maxSteps int) []schelling.Params {
	sets := make([]schelling.Params, 0, len(radii)*len(ranges)*len(patiences))
	for _, r := range radii {
		for _, rng := range ranges {
			for _, p := range patiences {
				sets = append(sets, schelling.Params{
					Radius:   r,
					Range:    rng,
					Patience: p,
					MaxSteps: maxSteps,
				})
			}
		}
	}
	return sets
}

// Run simulates each parameter set on its own copy of city using workers
// goroutines (runtime.NumCPU when workers <= 0). Results come back ordered by
// mean similarity, most segregated first. The first invalid parameter set
// aborts the sweep.
func Run(ctx context.Context, city *schelling.City, sets []schelling.Params, workers int) ([]Result, error) {
	for _, p := range sets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan schelling.Params)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				results <- runOne(city.Clone(), p)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, p := range sets {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].MeanSimilarity != all[j].MeanSimilarity {
			return all[i].MeanSimilarity > all[j].MeanSimilarity
		}
		return less(all[i].Params, all[j].Params)
	})
	return all, nil
}

func runOne(city *schelling.City, p schelling.Params) Result {
	res := schelling.NewSimulation(city, p).Run()
	stats := schelling.ComputeStats(city, p.Radius, p.Range)
	return Result{
		Params:         p,
		Radius:         p.Radius,
		SimLB:          p.Range.Lower,
		SimUB:          p.Range.Upper,
		Patience:       p.Patience,
		Relocations:    res.Relocations,
		Steps:          res.Steps,
		Outcome:        res.Outcome,
		OutcomeName:    res.Outcome.String(),
		SatisfiedShare: stats.SatisfiedShare(),
		MeanSimilarity: stats.Segregation(),
	}
}

func less(a, b schelling.Params) bool {
	switch {
	case a.Radius != b.Radius:
		return a.Radius < b.Radius
	case a.Range.Lower != b.Range.Lower:
		return a.Range.Lower < b.Range.Lower
	case a.Range.Upper != b.Range.Upper:
		return a.Range.Upper < b.Range.Upper
	default:
		return a.Patience < b.Patience
	}
}
