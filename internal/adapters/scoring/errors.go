package scoring

import (
	"errors"
	"fmt"
)

// Sentinel kinds for scoring client errors.
var (
	ErrUnhealthy = errors.New("service unhealthy")
)

// ServiceError is a non-200 answer from the scoring service. Message holds
// the service's structured error text when the response carried one.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("scoring service returned status %d", e.StatusCode)
}
