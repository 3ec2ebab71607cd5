package schelling

import (
	"strconv"

	"schelling/internal/core"
)

// Parameters reports the world's generation and relocation settings.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "City",
			Params: []core.Parameter{
				intParam("size", "Size", w.cfg.Size),
				int64Param("seed", "Seed", w.cfg.Seed),
				floatParam("vacancy_rate", "Vacancy rate", w.cfg.VacancyRate),
				floatParam("share_a", "TypeA share", w.cfg.ShareA),
			},
		},
		{
			Name:    "Relocation",
			Summary: "Households move when their similarity score leaves [sim_lb, sim_ub].",
			Params: []core.Parameter{
				intParam("r", "Neighborhood radius", p.Radius),
				floatParam("sim_lb", "Similarity lower bound", p.Range.Lower),
				floatParam("sim_ub", "Similarity upper bound", p.Range.Upper),
				intParam("patience", "Patience", p.Patience),
				intParam("max_steps", "Max steps", p.MaxSteps),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the settable parameters and their bounds.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "vacancy_rate", Label: "Vacancy rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "share_a", Label: "TypeA share", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "r", Label: "Neighborhood radius", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "sim_lb", Label: "Similarity lower bound", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "sim_ub", Label: "Similarity upper bound", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "patience", Label: "Patience", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "max_steps", Label: "Max steps", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
	}
}

// SetIntParameter updates an integer parameter. Relocation settings apply to
// the next step.
func (w *World) SetIntParameter(key string, value int) bool {
	p := &w.cfg.Params
	switch key {
	case "r":
		if value < 0 {
			return false
		}
		p.Radius = value
	case "patience":
		if value < 1 {
			return false
		}
		p.Patience = value
	case "max_steps":
		if value < 1 {
			return false
		}
		p.MaxSteps = value
	default:
		return false
	}
	w.sim.params = *p
	return true
}

// SetFloatParameter updates a floating point parameter. The similarity bounds
// must stay ordered; generation shares apply on the next Reset.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if value < 0 || value > 1 {
		return false
	}
	p := &w.cfg.Params
	switch key {
	case "vacancy_rate":
		w.cfg.VacancyRate = value
		return true
	case "share_a":
		w.cfg.ShareA = value
		return true
	case "sim_lb":
		if value > p.Range.Upper {
			return false
		}
		p.Range.Lower = value
	case "sim_ub":
		if value < p.Range.Lower {
			return false
		}
		p.Range.Upper = value
	default:
		return false
	}
	w.sim.params = *p
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
