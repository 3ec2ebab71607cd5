package schelling

import (
	"io"
	"log/slog"
)

// Outcome reports why a run stopped.
type Outcome uint8

const (
	// Running means the step budget is not spent and the last step moved someone.
	Running Outcome = iota
	// Converged means a step finished without a single relocation.
	Converged
	// StepLimitReached means MaxSteps steps ran without converging.
	StepLimitReached
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case StepLimitReached:
		return "step_limit_reached"
	}
	return "unknown"
}

// StepResult counts the relocations of one step.
type StepResult struct {
	Step   int
	ByType [3]int
}

// Total returns the relocations of both waves.
func (s StepResult) Total() int { return s.ByType[TypeA] + s.ByType[TypeB] }

// Result summarises a finished run.
type Result struct {
	Steps       int
	Relocations int
	Outcome     Outcome
	PerStep     []StepResult
}

// Simulation owns the mutable state of one run: the city, its homes for sale
// and the step counters.
type Simulation struct {
	city      *City
	vacancies *Vacancies
	params    Params
	logger    *slog.Logger
	observe   func(Relocation)

	step        int
	relocations int
	outcome     Outcome
}

// Option customises a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for step summaries.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers fn to be called after every committed relocation.
func WithObserver(fn func(Relocation)) Option {
	return func(s *Simulation) { s.observe = fn }
}

// NewSimulation prepares a run over c. The homes for sale are collected from
// the city as it is now. Params are used as given; call Validate first when
// they come from user input.
func NewSimulation(c *City, p Params, opts ...Option) *Simulation {
	s := &Simulation{
		city:      c,
		vacancies: NewVacancies(c),
		params:    p,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// City returns the simulated city.
func (s *Simulation) City() *City { return s.city }

// Vacancies returns the current homes for sale.
func (s *Simulation) Vacancies() *Vacancies { return s.vacancies }

// Steps returns the number of steps executed so far.
func (s *Simulation) Steps() int { return s.step }

// Relocations returns the relocations accumulated so far.
func (s *Simulation) Relocations() int { return s.relocations }

// Outcome reports the current state of the run.
func (s *Simulation) Outcome() Outcome { return s.outcome }

// Step runs one TypeA wave followed by one TypeB wave.
func (s *Simulation) Step() StepResult {
	res := StepResult{Step: s.step}
	p := s.params
	for _, t := range Households {
		var observe func(from, to Location)
		if s.observe != nil {
			t := t
			observe = func(from, to Location) {
				s.observe(Relocation{Step: res.Step, Household: t, Type: t.String(), From: from, To: to})
			}
		}
		res.ByType[t] = runWave(s.city, p.Radius, p.Range, p.Patience, s.vacancies, t, observe)
	}
	s.step++
	s.relocations += res.Total()
	s.outcome = Running
	if res.Total() == 0 {
		s.outcome = Converged
	}
	s.logger.Debug("step finished",
		"step", res.Step,
		"moved_a", res.ByType[TypeA],
		"moved_b", res.ByType[TypeB],
		"for_sale", s.vacancies.Len())
	return res
}

// Run steps until a step moves nobody or MaxSteps steps have run. A MaxSteps
// of zero runs nothing.
func (s *Simulation) Run() Result {
	var res Result
	for s.step < s.params.MaxSteps {
		sr := s.Step()
		res.PerStep = append(res.PerStep, sr)
		res.Relocations += sr.Total()
		res.Steps++
		if sr.Total() == 0 {
			break
		}
	}
	if s.outcome != Converged {
		s.outcome = StepLimitReached
	}
	res.Outcome = s.outcome
	s.logger.Info("simulation finished",
		"steps", res.Steps,
		"relocations", res.Relocations,
		"outcome", res.Outcome.String())
	return res
}

// RunSimulation validates p, runs the model on c until it converges or runs
// out of steps, and returns the total number of relocations. c is left in its
// final state.
func RunSimulation(c *City, p Params, opts ...Option) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return NewSimulation(c, p, opts...).Run().Relocations, nil
}
