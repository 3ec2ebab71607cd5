package schelling

import (
	"math"

	"schelling/internal/core"
)

// World is a randomly generated city driven one step at a time. It satisfies
// core.Sim so it can be listed and constructed through the sim registry.
type World struct {
	cfg  Config
	city *City
	sim  *Simulation
}

// New returns a World of side n using the default configuration.
func New(n int) *World {
	cfg := DefaultConfig()
	cfg.Size = n
	return NewWithConfig(cfg)
}

// NewWithConfig returns a World configured from the provided options. The
// city is populated immediately from cfg.Seed.
func NewWithConfig(cfg Config, opts ...Option) *World {
	w := &World{cfg: cfg}
	w.city = NewCity(cfg.Size)
	w.populate(cfg.Seed)
	w.sim = NewSimulation(w.city, cfg.Params, opts...)
	return w
}

// FromCity wraps an existing city, for example one loaded from a grid file.
// cfg.Size is replaced by the city's size; the generation settings only take
// effect after Reset.
func FromCity(c *City, cfg Config, opts ...Option) *World {
	cfg.Size = c.Size()
	return &World{cfg: cfg, city: c, sim: NewSimulation(c, cfg.Params, opts...)}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "schelling" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.city.n, H: w.city.n} }

// Cells exposes the city's household buffer.
func (w *World) Cells() []uint8 { return w.city.Cells() }

// City returns the simulated city.
func (w *World) City() *City { return w.city }

// Simulation returns the run driving the world.
func (w *World) Simulation() *Simulation { return w.sim }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset regenerates the city. A zero seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.populate(effective)
	w.sim = NewSimulation(w.city, w.cfg.Params, WithLogger(w.sim.logger), WithObserver(w.sim.observe))
}

// Step advances the world by one simulation step. A converged world, or one
// that has used up its MaxSteps budget, stays unchanged.
func (w *World) Step() {
	if w.sim.Outcome() == Converged || w.sim.Steps() >= w.sim.params.MaxSteps {
		return
	}
	w.sim.Step()
}

// populate fills the city with the configured mix of households in a
// seed-determined order. Type counts depend only on the size and shares.
func (w *World) populate(seed int64) {
	cells := w.city.Cells()
	total := len(cells)
	vacant := int(math.Round(float64(total) * w.cfg.VacancyRate))
	occupied := total - vacant
	typeA := int(math.Round(float64(occupied) * w.cfg.ShareA))
	for i := range cells {
		switch {
		case i < vacant:
			cells[i] = uint8(Vacant)
		case i < vacant+typeA:
			cells[i] = uint8(TypeA)
		default:
			cells[i] = uint8(TypeB)
		}
	}
	core.NewRNG(seed).Shuffle(cells)
}

func init() {
	core.Register("schelling", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
