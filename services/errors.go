package services

import (
	"errors"
	"fmt"
)

// ErrCustomerNotFound is returned by mutations that require an existing
// customer. Read paths signal a missing customer with a nil result instead.
var ErrCustomerNotFound = errors.New("customer not found")

// ValidationError represents bad or missing required input. The request must
// not mutate state when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}
