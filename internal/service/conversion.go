package service

import (
	"context"
	"errors"
	"slices"

	"github.com/flightctl/romannumeral/internal/instrumentation"
	"github.com/flightctl/romannumeral/internal/instrumentation/tracing"
	"github.com/flightctl/romannumeral/pkg/log"
	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/jellydator/ttlcache/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (h *ServiceHandler) Convert(ctx context.Context, n int) (roman.Conversion, error) {
	numeral, err := h.converter.Convert(n)
	if err != nil {
		h.observeFailure(ctx, instrumentation.OperationSingle, err)
		return roman.Conversion{}, err
	}
	h.metrics.ObserveConversion(instrumentation.OperationSingle, instrumentation.OutcomeSuccess, 1)
	return roman.Conversion{Input: n, Output: numeral}, nil
}

func (h *ServiceHandler) RangeConvert(ctx context.Context, min, max int) ([]roman.Conversion, error) {
	ctx, span := tracing.StartSpan(ctx, "RangeConvert", trace.WithAttributes(
		attribute.Int("range.min", min),
		attribute.Int("range.max", max),
	))
	defer span.End()

	key := rangeKey{min: min, max: max}
	if cached, ok := h.cachedRange(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		h.metrics.ObserveConversion(instrumentation.OperationRange, instrumentation.OutcomeSuccess, len(cached))
		return cached, nil
	}

	conversions, err := h.converter.RangeConvert(min, max)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.observeFailure(ctx, instrumentation.OperationRange, err)
		return nil, err
	}
	log.WithReqIDFromCtx(ctx, h.log).Debugf("Converted range [%d, %d] (%d values)", min, max, len(conversions))

	if h.cache != nil {
		h.cache.Set(key, slices.Clone(conversions), ttlcache.DefaultTTL)
	}
	h.metrics.ObserveConversion(instrumentation.OperationRange, instrumentation.OutcomeSuccess, len(conversions))
	return conversions, nil
}

// cachedRange returns a copy of a cached range so callers cannot modify the
// cached slice.
func (h *ServiceHandler) cachedRange(key rangeKey) ([]roman.Conversion, bool) {
	if h.cache == nil {
		return nil, false
	}
	item := h.cache.Get(key)
	h.metrics.ObserveCache(item != nil)
	if item == nil {
		return nil, false
	}
	return slices.Clone(item.Value()), true
}

func (h *ServiceHandler) observeFailure(ctx context.Context, operation string, err error) {
	reqLog := log.WithReqIDFromCtx(ctx, h.log)
	if errors.Is(err, roman.ErrInvalidInput) {
		reqLog.Warnf("Invalid %s conversion input: %v", operation, err)
		h.metrics.ObserveConversion(operation, instrumentation.OutcomeInvalid, 0)
		return
	}
	reqLog.WithError(err).Errorf("Failed %s conversion", operation)
	h.metrics.ObserveConversion(operation, instrumentation.OutcomeError, 0)
}
