package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	api "github.com/flightctl/romannumeral/api/v1"
	fcmiddleware "github.com/flightctl/romannumeral/internal/api_server/middleware"
	"github.com/flightctl/romannumeral/internal/config"
	"github.com/flightctl/romannumeral/internal/instrumentation"
	"github.com/flightctl/romannumeral/internal/instrumentation/tracing"
	"github.com/flightctl/romannumeral/internal/service"
	"github.com/flightctl/romannumeral/internal/transport"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	log      logrus.FieldLogger
	cfg      *config.Config
	listener net.Listener
	service  service.Service
	metrics  *instrumentation.ApiMetrics
}

// New returns a new instance of the numeral API server.
func New(
	log logrus.FieldLogger,
	cfg *config.Config,
	listener net.Listener,
	svc service.Service,
	metrics *instrumentation.ApiMetrics,
) *Server {
	return &Server{
		log:      log,
		cfg:      cfg,
		listener: listener,
		service:  svc,
		metrics:  metrics,
	}
}

// Handler builds the fully wired HTTP handler served by Run.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	// request size limits should come before logging to prevent DoS attacks from filling logs
	router.Use(
		middleware.RequestSize(int64(s.cfg.Service.HttpMaxRequestSize)),
		fcmiddleware.RequestSizeLimiter(s.cfg.Service.HttpMaxUrlLength, s.cfg.Service.HttpMaxNumHeaders),
		fcmiddleware.RequestID,
		fcmiddleware.ChiLogger(s.log),
	)
	// metrics sit outside the recoverer so recovered panics count as server errors
	if s.metrics != nil {
		router.Use(s.metrics.ServerMiddleware)
	}
	router.Use(fcmiddleware.Recoverer(s.log))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fcmiddleware.WriteJSONError(w, http.StatusNotFound, api.ErrorCodeNotFound,
			fmt.Errorf("no route for %s", r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		fcmiddleware.WriteJSONError(w, http.StatusMethodNotAllowed, api.ErrorCodeMethodNotAllowed,
			fmt.Errorf("method %s is not allowed for %s", r.Method, r.URL.Path))
	})

	// health endpoints: bypass rate limiting, but keep global safety middlewares
	hc := s.cfg.Service.HealthChecks
	router.Method(http.MethodGet, hc.LivenessPath, HealthcheckHandler())
	router.Method(http.MethodGet, hc.ReadinessPath, ReadyzHandler(time.Duration(hc.ReadinessTimeout), s.service))

	router.Group(func(r chi.Router) {
		ConfigureRateLimiterFromConfig(r, s.cfg.Service.RateLimit)
		transport.NewTransportHandler(s.service, s.log).RegisterRoutes(r)
	})

	return otelhttp.NewHandler(router, "http-server", otelhttp.WithSpanNameFormatter(tracing.RouteSpanNameFormatter(router)))
}

func (s *Server) Run(ctx context.Context) error {
	s.log.Println("Initializing API server")
	srv := fcmiddleware.NewHTTPServer(s.Handler(), s.cfg.Service.Address, s.cfg)

	go func() {
		<-ctx.Done()
		s.log.Println("Shutdown signal received:", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
	}()

	s.log.Printf("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
