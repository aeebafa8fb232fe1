package service

import (
	"context"
	"time"

	"github.com/flightctl/romannumeral/internal/instrumentation"
	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/jellydator/ttlcache/v3"
	"github.com/sirupsen/logrus"
)

// CacheOptions configures the range result cache. A zero Capacity disables it.
type CacheOptions struct {
	Capacity uint64
	TTL      time.Duration
}

type rangeKey struct {
	min, max int
}

type ServiceHandler struct {
	converter Converter
	log       logrus.FieldLogger
	metrics   *instrumentation.ApiMetrics
	cache     *ttlcache.Cache[rangeKey, []roman.Conversion]
}

var _ Service = (*ServiceHandler)(nil)

func NewServiceHandler(converter Converter, log logrus.FieldLogger, metrics *instrumentation.ApiMetrics, cacheOpts CacheOptions) *ServiceHandler {
	h := &ServiceHandler{
		converter: converter,
		log:       log,
		metrics:   metrics,
	}
	if cacheOpts.Capacity > 0 && cacheOpts.TTL > 0 {
		h.cache = ttlcache.New[rangeKey, []roman.Conversion](
			ttlcache.WithTTL[rangeKey, []roman.Conversion](cacheOpts.TTL),
			ttlcache.WithCapacity[rangeKey, []roman.Conversion](cacheOpts.Capacity),
			ttlcache.WithDisableTouchOnHit[rangeKey, []roman.Conversion](),
		)
	}
	return h
}

// Run drives the cache expiry loop until ctx is done.
func (h *ServiceHandler) Run(ctx context.Context) error {
	if h.cache == nil {
		<-ctx.Done()
		return nil
	}
	go func() {
		<-ctx.Done()
		// blocks until the loop below picks it up
		h.cache.Stop()
	}()
	h.cache.Start()
	h.cache.DeleteAll()
	return nil
}
