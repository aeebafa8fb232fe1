package middleware

import (
	"net/http"
	"time"

	"github.com/flightctl/romannumeral/internal/config"
)

func NewHTTPServer(router http.Handler, address string, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.Service.HttpReadTimeout),
		ReadHeaderTimeout: time.Duration(cfg.Service.HttpReadHeaderTimeout),
		WriteTimeout:      time.Duration(cfg.Service.HttpWriteTimeout),
		IdleTimeout:       time.Duration(cfg.Service.HttpIdleTimeout),
		MaxHeaderBytes:    cfg.Service.HttpMaxHeaderBytes,
	}
}
