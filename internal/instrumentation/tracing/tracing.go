package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flightctl/romannumeral/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stoewer/go-strcase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const TracerName = "romannumeral"

// InitTracer sets the global TracerProvider from cfg. When tracing is disabled
// a no-op provider is installed. The returned function flushes pending spans.
func InitTracer(log logrus.FieldLogger, cfg *config.Config, serviceName string) (func(context.Context) error, error) {
	if cfg.Tracing == nil || !cfg.Tracing.Enabled {
		log.Info("Tracing is disabled")
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{}
	if cfg.Tracing.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Tracing.Endpoint))
	}
	if cfg.Tracing.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	// the exporter connects lazily, so this only fails on bad options
	exp, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	svc := TracerName
	if serviceName != "" {
		svc = serviceName
	}
	tp := newProvider(sdktrace.WithBatcher(exp), svc)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Infof("Tracing initialized, exporting to %q", cfg.Tracing.Endpoint)
	return tp.Shutdown, nil
}

func newProvider(processor sdktrace.TracerProviderOption, serviceName string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
}

// StartSpan starts a span on the global provider. The name is normalized to kebab-case.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, strcase.KebabCase(spanName), opts...)
}

// RouteSpanNameFormatter names server spans after the matching chi route
// pattern and falls back to operation for unknown paths.
func RouteSpanNameFormatter(routes chi.Routes) func(string, *http.Request) string {
	return func(operation string, r *http.Request) string {
		if r == nil || routes == nil {
			return operation
		}
		rctx := chi.NewRouteContext()
		if routes.Match(rctx, r.Method, r.URL.Path) {
			if route := rctx.RoutePattern(); route != "" {
				return r.Method + " " + route
			}
		}
		return operation
	}
}
