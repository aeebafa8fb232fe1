package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/pkg/roman"
)

// WriteJSONResponse encodes body for 2xx status codes and errorBody otherwise.
// Responses with no body (204, 304, 1xx) only write the status code.
func WriteJSONResponse(w http.ResponseWriter, body any, errorBody any, code int) {
	if code == http.StatusNoContent || code == http.StatusNotModified || (code >= 100 && code < 200) {
		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	// Encode into a buffer first so encoding errors can still change the status
	var buf bytes.Buffer
	var err error
	if body != nil && code >= 200 && code < 300 {
		err = json.NewEncoder(&buf).Encode(body)
	} else {
		err = json.NewEncoder(&buf).Encode(errorBody)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// WriteError maps err onto the error envelope. Invalid input is a client
// error, everything else is reported as an internal error.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, roman.ErrInvalidInput) {
		WriteJSONResponse(w, nil, api.ErrorResponse{Message: err.Error(), ErrorCode: api.ErrorCodeInvalidInput}, http.StatusBadRequest)
		return
	}
	WriteJSONResponse(w, nil, api.ErrorResponse{Message: err.Error(), ErrorCode: api.ErrorCodeInternalError}, http.StatusInternalServerError)
}

// intQueryParam reads a required integer query parameter.
func intQueryParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, &roman.InvalidInputError{Message: fmt.Sprintf("missing required query parameter %q", name)}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &roman.InvalidInputError{Message: fmt.Sprintf("query parameter %q must be an integer, got %q", name, raw)}
	}
	return v, nil
}

func toConversionResponse(c roman.Conversion) api.ConversionResponse {
	return api.ConversionResponse{
		Input:  strconv.Itoa(c.Input),
		Output: c.Output,
	}
}
