package simulation

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every construction-time validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError describes a single rejected field. The engine refuses
// to run when any of these is returned from New.
type InvalidParameterError struct {
	Field  string
	Value  interface{}
	Reason string
}

// Error implements the error interface
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is match against ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// Violations flattens err into the InvalidParameterErrors it carries.
func Violations(err error) []*InvalidParameterError {
	switch e := err.(type) {
	case nil:
		return nil
	case *InvalidParameterError:
		return []*InvalidParameterError{e}
	case interface{ Unwrap() []error }:
		var out []*InvalidParameterError
		for _, inner := range e.Unwrap() {
			out = append(out, Violations(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return Violations(e.Unwrap())
	}
	return nil
}

// InvalidFields lists the field names of every violation in err.
func InvalidFields(err error) []string {
	var fields []string
	for _, v := range Violations(err) {
		fields = append(fields, v.Field)
	}
	return fields
}
