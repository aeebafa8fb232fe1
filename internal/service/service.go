package service

//go:generate mockgen -destination mock_converter.go -package service . Converter

import (
	"context"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/pkg/roman"
)

type Service interface {
	// Conversion
	Convert(ctx context.Context, n int) (roman.Conversion, error)
	RangeConvert(ctx context.Context, min, max int) ([]roman.Conversion, error)

	// Version
	GetVersion(ctx context.Context) api.Version

	// Health
	CheckHealth(ctx context.Context) error
}

// Converter is the numeral conversion backend used by the service.
type Converter interface {
	Convert(n int) (string, error)
	RangeConvert(min, max int) ([]roman.Conversion, error)
}
