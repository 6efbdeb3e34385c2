package intstack

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCapacityExceeded = errors.New("stack capacity exceeded")
	ErrUnderflow        = errors.New("stack is empty")
	ErrNilSource        = fmt.Errorf("%w: source must not be nil", ErrInvalidArgument)
)

// ArgumentError describes an argument rejected by a stack initialiser.
type ArgumentError struct {
	name   string
	value  int
	reason string
}

func (this *ArgumentError) Name() string {
	return this.name
}

func (this *ArgumentError) Value() int {
	return this.value
}

func (this *ArgumentError) Error() string {
	return fmt.Sprintf(
		"invalid %s %d: %s",
		this.name, this.value, this.reason,
	)
}

func (this *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
