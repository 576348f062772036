package errors

import (
	"strings"
)

// ConstraintViolations collects every failed tree constraint of a mount
// attempt so they can be reported together.
type ConstraintViolations struct {
	Messages []string
}

// Error implements the error interface.
func (c *ConstraintViolations) Error() string {
	return ErrConstraintViolation.Error() + ":\n- " + strings.Join(c.Messages, "\n- ")
}

// Is makes errors.Is(err, ErrConstraintViolation) hold for every collection.
func (c *ConstraintViolations) Is(target error) bool {
	return target == ErrConstraintViolation
}

// Unwrap exposes the category as the cause.
func (c *ConstraintViolations) Unwrap() error {
	return ErrConstraintViolation
}

// NewConstraintViolations returns nil when messages is empty.
func NewConstraintViolations(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ConstraintViolations{Messages: append([]string(nil), messages...)}
}
