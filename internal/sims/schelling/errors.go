package schelling

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error returned from Params.Validate.
var ErrConfiguration = errors.New("invalid simulation configuration")

// ConfigError reports a rejected simulation parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// PreconditionError is the panic value raised when a caller breaks an
// invariant of the relocation model, such as evaluating a vacant cell.
// These are programming errors and are never returned as values.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return "schelling: " + e.Msg }

func faultf(format string, args ...any) {
	panic(&PreconditionError{Msg: fmt.Sprintf(format, args...)})
}
