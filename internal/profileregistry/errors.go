package profileregistry

import (
	"errors"
	"fmt"
)

// ErrIncompleteProfile is returned when the registry omits the mean or
// volatility, or reports a negative volatility.
var ErrIncompleteProfile = errors.New("incomplete risk profile")

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("profile registry returned status %d", e.Code)
}
