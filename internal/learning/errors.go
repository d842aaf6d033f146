package learning

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is returned when the dispatched action string is not recognized
var ErrInvalidAction = errors.New("invalid action")

// MissingParameterError reports a required request parameter that was absent
type MissingParameterError struct {
	Field string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s required", e.Field)
}

// NotFoundError reports a lookup against the static catalogs that found nothing
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
