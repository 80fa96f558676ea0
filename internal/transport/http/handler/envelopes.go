package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
}

// DataEnvelope wraps successful JSON-API responses.
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// TokenData is the body of a successful API login.
type TokenData struct {
	Type      string       `json:"type"`
	JWT       string       `json:"jwt"`
	ExpiresIn int64        `json:"expires_in"`
	User      *domain.User `json:"user"`
}

type DeletedData struct {
	Deleted int64 `json:"deleted"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", middleware.JSONAPIContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, errs map[string][]string) {
	middleware.WriteErrors(w, status, errs)
}

// errorStatus maps a tagged error kind to its HTTP status.
func errorStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindGeocoderFailed:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// writeDomainError writes err as a JSON-API error body. Tagged errors keep
// their key and code; anything else is logged and reported as ec5_103.
func writeDomainError(w http.ResponseWriter, log logger.Logger, err error) {
	if de, ok := domain.AsError(err); ok {
		writeErrors(w, errorStatus(de.Kind), de.Errors())
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, map[string][]string{"project": {domain.CodeProjectNotFound}})
		return
	}
	log.Info("request failed", map[string]any{"error": err})
	writeErrors(w, http.StatusInternalServerError, map[string][]string{"server": {domain.CodeServerError}})
}

const maxBodyBytes = 10 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
