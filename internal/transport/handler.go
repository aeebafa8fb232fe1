package transport

import (
	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type TransportHandler struct {
	serviceHandler service.Service
	log            logrus.FieldLogger
}

func NewTransportHandler(serviceHandler service.Service, log logrus.FieldLogger) *TransportHandler {
	return &TransportHandler{
		serviceHandler: serviceHandler,
		log:            log,
	}
}

func (h *TransportHandler) RegisterRoutes(r chi.Router) {
	r.Get(api.ServerUrlConvert, h.ConvertNumeral)
	r.Get(api.ServerUrlConvertRange, h.ConvertRange)
	r.Get(api.ServerUrlVersion, h.GetVersion)
}
