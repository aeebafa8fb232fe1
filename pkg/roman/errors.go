package roman

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches every validation failure returned by this package.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes why an input or range was rejected.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newInvalidInput(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ValidateInput reports whether n can be converted, matching Convert's error.
func ValidateInput(n int) error {
	if !IsValid(n) {
		return newInvalidInput("input %d should be between %d and %d", n, MinValue, MaxValue)
	}
	return nil
}

// ValidateRange reports whether [min, max] can be converted, matching RangeConvert's error.
func ValidateRange(min, max int) error {
	minOK, maxOK := IsValid(min), IsValid(max)
	switch {
	case !minOK && !maxOK:
		return newInvalidInput("min value %d and max value %d should be between %d and %d", min, max, MinValue, MaxValue)
	case !minOK:
		return newInvalidInput("min value %d should be between %d and %d", min, MinValue, MaxValue)
	case !maxOK:
		return newInvalidInput("max value %d should be between %d and %d", max, MinValue, MaxValue)
	}
	if min > max {
		return newInvalidInput("min value %d should be less than or equal to max value %d and within the range (%d, %d) inclusive",
			min, max, MinValue, MaxValue)
	}
	return nil
}
