package handler

import (
	"net/http"

	jwtinfra "github.com/ec5/ec5-api/internal/infrastructure/jwt"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
)

type tokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

// HomeHandler renders the landing page, showing errors flashed by a redirect.
type HomeHandler struct {
	flash  FlashReader
	tokens tokenVerifier
	log    logger.Logger
}

func NewHomeHandler(flash FlashReader, tokens tokenVerifier, log logger.Logger) *HomeHandler {
	return &HomeHandler{flash: flash, tokens: tokens, log: log}
}

func (h *HomeHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := pageData{Errors: flatten(pullFlash(w, r, h.flash, h.log))}
	if c, err := r.Cookie(middleware.TokenCookie); err == nil && h.tokens != nil {
		if _, err := h.tokens.Verify(c.Value); err == nil {
			data.LoggedIn = true
		}
	}
	render(w, http.StatusOK, homePage, data)
}
