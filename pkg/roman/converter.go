package roman

import (
	"cmp"
	"runtime"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var defaultConverter = NewConverter()

// Converter converts single values and ranges. The zero value is not usable;
// construct one with NewConverter.
type Converter struct {
	workers int
}

type Option func(*Converter)

// WithWorkers bounds the number of goroutines used by RangeConvert. Values
// below one fall back to GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(c *Converter) {
		c.workers = workers
	}
}

func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Workers returns the concurrency limit used for range conversions.
func (c *Converter) Workers() int {
	return c.workers
}

func (c *Converter) Convert(n int) (string, error) {
	if err := ValidateInput(n); err != nil {
		return "", err
	}
	return toRoman(n), nil
}

// RangeConvert converts every integer in [min, max]. Chunks of the interval
// are converted concurrently and the result is sorted by input before it is
// returned.
func (c *Converter) RangeConvert(min, max int) ([]Conversion, error) {
	if err := ValidateRange(min, max); err != nil {
		return nil, err
	}

	count := max - min + 1
	chunks := lo.Chunk(lo.RangeFrom(min, count), chunkSize(count, c.workers))

	results := make(chan []Conversion, len(chunks))
	g := new(errgroup.Group)
	g.SetLimit(c.workers)
	for _, chunk := range chunks {
		g.Go(func() error {
			results <- lo.Map(chunk, func(n int, _ int) Conversion {
				return Conversion{Input: n, Output: toRoman(n)}
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	conversions := make([]Conversion, 0, count)
	for part := range results {
		conversions = append(conversions, part...)
	}
	slices.SortFunc(conversions, func(a, b Conversion) int {
		return cmp.Compare(a.Input, b.Input)
	})
	return conversions, nil
}

func chunkSize(count, workers int) int {
	size := (count + workers - 1) / workers
	if size < 1 {
		return 1
	}
	return size
}
