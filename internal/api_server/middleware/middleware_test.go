package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/internal/config"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestSizeLimiter(t *testing.T) {
	handler := RequestSizeLimiter(40, 3)(okHandler)

	t.Run("within limits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/romannumeral/v1?query=1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("url too long", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/romannumeral/v1?query="+strings.Repeat("1", 40), nil))
		require.Equal(t, http.StatusRequestURITooLong, rec.Code)
		assert.Equal(t, api.ErrorCodeInvalidInput, decodeErrorBody(t, rec).ErrorCode)
	})

	t.Run("too many headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, h := range []string{"A", "B", "C", "D"} {
			req.Header.Set("X-"+h, "v")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusRequestHeaderFieldsTooLarge, rec.Code)
		assert.Contains(t, decodeErrorBody(t, rec).Message, "exceeds 3")
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(chimw.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(chimw.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(chimw.RequestIDHeader))
	})
}

func TestRecoverer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := RequestID(Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/romannumeral/v1", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, api.ErrorResponse{Message: "internal server error", ErrorCode: api.ErrorCodeInternalError}, decodeErrorBody(t, rec))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "kaboom")
	assert.NotEmpty(t, hook.LastEntry().Data["request_id"])
}

func TestChiLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := RequestID(ChiLogger(logger)(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Contains(t, entry.Message, "GET")
	assert.Contains(t, entry.Message, "/healthcheck")
}

func TestNewHTTPServer(t *testing.T) {
	cfg := config.NewDefault()
	srv := NewHTTPServer(okHandler, ":9999", cfg)
	assert.Equal(t, ":9999", srv.Addr)
	assert.Equal(t, cfg.Service.HttpMaxHeaderBytes, srv.MaxHeaderBytes)
	assert.EqualValues(t, cfg.Service.HttpReadTimeout, srv.ReadTimeout)
	assert.EqualValues(t, cfg.Service.HttpIdleTimeout, srv.IdleTimeout)
}
