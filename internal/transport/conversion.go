package transport

import (
	"net/http"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/samber/lo"
)

// (GET /romannumeral/v1)
func (h *TransportHandler) ConvertNumeral(w http.ResponseWriter, r *http.Request) {
	n, err := intQueryParam(r, api.QueryParamValue)
	if err != nil {
		WriteError(w, err)
		return
	}

	conversion, err := h.serviceHandler.Convert(r.Context(), n)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSONResponse(w, toConversionResponse(conversion), nil, http.StatusOK)
}

// (GET /romannumeral)
func (h *TransportHandler) ConvertRange(w http.ResponseWriter, r *http.Request) {
	min, err := intQueryParam(r, api.QueryParamMin)
	if err != nil {
		WriteError(w, err)
		return
	}
	max, err := intQueryParam(r, api.QueryParamMax)
	if err != nil {
		WriteError(w, err)
		return
	}

	conversions, err := h.serviceHandler.RangeConvert(r.Context(), min, max)
	if err != nil {
		WriteError(w, err)
		return
	}
	body := api.RangeConversionResponse{
		Conversions: lo.Map(conversions, func(c roman.Conversion, _ int) api.ConversionResponse {
			return toConversionResponse(c)
		}),
	}
	WriteJSONResponse(w, body, nil, http.StatusOK)
}
