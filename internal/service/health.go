package service

import (
	"context"
	"fmt"

	"github.com/flightctl/romannumeral/pkg/roman"
)

const maxValueNumeral = "MMMCMXCIX"

// CheckHealth verifies the converter still produces the expected numeral for
// the largest supported value.
func (h *ServiceHandler) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	numeral, err := h.converter.Convert(roman.MaxValue)
	if err != nil {
		return fmt.Errorf("converter self-check: %w", err)
	}
	if numeral != maxValueNumeral {
		return fmt.Errorf("converter self-check: %d converted to %q, expected %q", roman.MaxValue, numeral, maxValueNumeral)
	}
	return nil
}
