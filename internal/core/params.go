package core

import (
	"fmt"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for reporting.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterControl describes an adjustable parameter. Steps and bounds are
// optional and interpreted based on the parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows callers to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter allows callers to update floating point parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// Find returns the parameter with the given key from any group.
func (s ParameterSnapshot) Find(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ApplyParameter parses value according to the control registered for key
// and hands it to the matching setter implemented by target.
func ApplyParameter(target ParameterControlsProvider, key, value string) error {
	var ctrl *ParameterControl
	for _, c := range target.ParameterControls() {
		if c.Key == key {
			c := c
			ctrl = &c
			break
		}
	}
	if ctrl == nil {
		return fmt.Errorf("unknown parameter %q", key)
	}
	switch ctrl.Type {
	case ParamTypeInt:
		setter, ok := target.(IntParameterSetter)
		if !ok {
			return fmt.Errorf("parameter %q is not settable", key)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		if (ctrl.HasMin && float64(v) < ctrl.Min) || (ctrl.HasMax && float64(v) > ctrl.Max) {
			return fmt.Errorf("parameter %q: %d out of range", key, v)
		}
		if !setter.SetIntParameter(key, v) {
			return fmt.Errorf("parameter %q rejected %d", key, v)
		}
	case ParamTypeFloat:
		setter, ok := target.(FloatParameterSetter)
		if !ok {
			return fmt.Errorf("parameter %q is not settable", key)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		if (ctrl.HasMin && v < ctrl.Min) || (ctrl.HasMax && v > ctrl.Max) {
			return fmt.Errorf("parameter %q: %g out of range", key, v)
		}
		if !setter.SetFloatParameter(key, v) {
			return fmt.Errorf("parameter %q rejected %g", key, v)
		}
	default:
		return fmt.Errorf("parameter %q has unsupported type %s", key, ctrl.Type)
	}
	return nil
}
