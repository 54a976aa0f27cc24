package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches every *InputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError carries a client-facing validation message.
type InputError struct {
	Message string
}

func (err *InputError) Error() string {
	return err.Message
}

func (err *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}
