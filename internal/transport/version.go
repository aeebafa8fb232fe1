package transport

import (
	"net/http"
)

// (GET /api/version)
func (h *TransportHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	WriteJSONResponse(w, h.serviceHandler.GetVersion(r.Context()), nil, http.StatusOK)
}
