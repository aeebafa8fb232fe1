package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/pkg/log"
	"github.com/flightctl/romannumeral/pkg/reqid"
	chi "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestSizeLimiter returns a middleware that limits the URL length and the number of request headers.
func RequestSizeLimiter(maxURLLength int, maxNumHeaders int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.String()) > maxURLLength {
				WriteJSONError(w, http.StatusRequestURITooLong, api.ErrorCodeInvalidInput,
					fmt.Errorf("URL too long, exceeds %d characters", maxURLLength))
				return
			}
			if len(r.Header) > maxNumHeaders {
				WriteJSONError(w, http.StatusRequestHeaderFieldsTooLarge, api.ErrorCodeInvalidInput,
					fmt.Errorf("request has too many headers, exceeds %d", maxNumHeaders))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(chi.RequestIDHeader)
		if requestID == "" {
			requestID = reqid.NextRequestID()
		}
		ctx := context.WithValue(r.Context(), chi.RequestIDKey, requestID)
		w.Header().Set(chi.RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recoverer turns a handler panic into a 500 with the usual error envelope.
func Recoverer(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log.WithReqIDFromCtx(r.Context(), logger).
					WithField("stack", string(debug.Stack())).
					Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rvr)
				WriteJSONError(w, http.StatusInternalServerError, api.ErrorCodeInternalError,
					fmt.Errorf("internal server error"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
