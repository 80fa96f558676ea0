package handler

import (
	"net/http"

	"github.com/ec5/ec5-api/internal/application/geocode"
	"github.com/ec5/ec5-api/internal/pkg/logger"
)

type GeocoderHandler struct {
	svc geocode.Service
	log logger.Logger
}

func NewGeocoderHandler(svc geocode.Service, log logger.Logger) *GeocoderHandler {
	return &GeocoderHandler{svc: svc, log: log}
}

// Lookup proxies ?q= to the geocoder and returns its body untouched.
func (h *GeocoderHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
