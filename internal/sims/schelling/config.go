package schelling

import "strconv"

// Params holds the relocation rules shared by every household.
type Params struct {
	// Radius is the Manhattan neighborhood radius R.
	Radius int
	// Range is the inclusive band of acceptable similarity scores.
	Range Range
	// Patience is the number of satisfactory homes visited before settling
	// in the last one.
	Patience int
	// MaxSteps caps the number of simulation steps.
	MaxSteps int
}

// Validate rejects parameters that cannot drive a simulation. Every returned
// error matches ErrConfiguration.
func (p Params) Validate() error {
	switch {
	case p.Radius < 0:
		return &ConfigError{Field: "radius", Reason: "must be non-negative, got " + strconv.Itoa(p.Radius)}
	case p.Range.Lower < 0 || p.Range.Lower > 1:
		return &ConfigError{Field: "sim_lb", Reason: "must be within [0, 1], got " + formatFloat(p.Range.Lower)}
	case p.Range.Upper < 0 || p.Range.Upper > 1:
		return &ConfigError{Field: "sim_ub", Reason: "must be within [0, 1], got " + formatFloat(p.Range.Upper)}
	case p.Range.Lower > p.Range.Upper:
		return &ConfigError{Field: "sim_lb", Reason: "exceeds sim_ub " + formatFloat(p.Range.Upper)}
	case p.Patience < 1:
		return &ConfigError{Field: "patience", Reason: "must be positive, got " + strconv.Itoa(p.Patience)}
	case p.MaxSteps < 1:
		return &ConfigError{Field: "max_steps", Reason: "must be positive, got " + strconv.Itoa(p.MaxSteps)}
	}
	return nil
}

// Config controls a generated Schelling world.
type Config struct {
	// Size is the side length N of the city.
	Size int
	Seed int64

	// VacancyRate is the share of cells left for sale.
	VacancyRate float64
	// ShareA is the share of occupied cells held by TypeA households.
	ShareA float64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:        40,
		Seed:        1337,
		VacancyRate: 0.1,
		ShareA:      0.5,
		Params: Params{
			Radius:   1,
			Range:    Range{Lower: 0.4, Upper: 0.7},
			Patience: 3,
			MaxSteps: 100,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["vacancy_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.VacancyRate = parsed
		}
	}
	if v, ok := cfg["share_a"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.ShareA = parsed
		}
	}
	if v, ok := cfg["r"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.Radius = parsed
		}
	}
	if v, ok := cfg["sim_lb"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.Range.Lower = parsed
		}
	}
	if v, ok := cfg["sim_ub"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.Range.Upper = parsed
		}
	}
	if c.Params.Range.Upper < c.Params.Range.Lower {
		c.Params.Range.Upper = c.Params.Range.Lower
	}
	if v, ok := cfg["patience"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.Patience = parsed
		}
	}
	if v, ok := cfg["max_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxSteps = parsed
		}
	}
	return c
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
