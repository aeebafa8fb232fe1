package middleware

import (
	"encoding/json"
	"net/http"

	api "github.com/flightctl/romannumeral/api/v1"
)

func WriteJSONError(w http.ResponseWriter, code int, errorCode api.ErrorCode, err error) {
	body := api.ErrorResponse{
		Message:   err.Error(),
		ErrorCode: errorCode,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
