package handler

import (
	"net/http"
	"strings"

	"github.com/ec5/ec5-api/internal/application/session"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/pkg/validate"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
)

// SessionConfig holds the routes and cookie settings the session handler needs.
type SessionConfig struct {
	LoginPath      string
	HomePath       string
	SecureCookies  bool
	GoogleClientID string
}

// SessionHandler handles login and logout for API clients and browsers.
type SessionHandler struct {
	svc   session.Service
	flash FlashReader
	resp  *middleware.ErrorResponder
	log   logger.Logger
	cfg   SessionConfig
}

func NewSessionHandler(svc session.Service, flash FlashReader, resp *middleware.ErrorResponder, log logger.Logger, cfg SessionConfig) *SessionHandler {
	return &SessionHandler{svc: svc, flash: flash, resp: resp, log: log, cfg: cfg}
}

// LoginPage renders the login form with any flashed errors.
func (h *SessionHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, loginPage, pageData{
		Errors:         flatten(pullFlash(w, r, h.flash, h.log)),
		GoogleClientID: h.cfg.GoogleClientID,
	})
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	api := middleware.IsAPIRequest(r)
	var req domain.LoginRequest
	if api {
		if err := decodeJSON(w, r, &req); err != nil {
			writeErrors(w, http.StatusBadRequest, map[string][]string{"login": {domain.CodeInvalidValue}})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.resp.Redirect(w, r, h.cfg.LoginPath, map[string][]string{"login": {domain.CodeInvalidValue}})
			return
		}
		req.Email = r.PostFormValue("email")
		req.Password = r.PostFormValue("password")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if errs := validate.Errors(req); errs != nil {
		h.fail(w, r, api, http.StatusBadRequest, errs)
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	h.finish(w, r, api, res, err)
}

// Google completes a Google sign-in. Browsers post the ID token as the
// "credential" form field; API clients send {"id_token": "..."}.
func (h *SessionHandler) Google(w http.ResponseWriter, r *http.Request) {
	api := middleware.IsAPIRequest(r)
	var token string
	if api {
		var body struct {
			IDToken string `json:"id_token"`
		}
		_ = decodeJSON(w, r, &body)
		token = body.IDToken
	} else if err := r.ParseForm(); err == nil {
		token = r.PostFormValue("credential")
	}
	if token == "" {
		h.fail(w, r, api, http.StatusBadRequest, map[string][]string{"id_token": {domain.CodeRequired}})
		return
	}
	res, err := h.svc.LoginWithGoogle(r.Context(), token)
	h.finish(w, r, api, res, err)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	if middleware.IsAPIRequest(r) {
		writeJSON(w, http.StatusOK, DataEnvelope{Data: MessageEnvelope{Message: "logged out"}})
		return
	}
	http.Redirect(w, r, h.cfg.HomePath, http.StatusFound)
}

func (h *SessionHandler) finish(w http.ResponseWriter, r *http.Request, api bool, res *session.LoginResult, err error) {
	if err != nil {
		if de, ok := domain.AsError(err); ok {
			h.fail(w, r, api, errorStatus(de.Kind), de.Errors())
			return
		}
		h.log.Info("login failed", map[string]any{"error": err})
		h.fail(w, r, api, http.StatusInternalServerError, map[string][]string{"login": {domain.CodeServerError}})
		return
	}
	if api {
		writeJSON(w, http.StatusOK, DataEnvelope{Data: TokenData{
			Type:      "jwt",
			JWT:       res.Token,
			ExpiresIn: int64(res.ExpiresIn.Seconds()),
			User:      res.User,
		}})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(res.ExpiresIn.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.cfg.HomePath, http.StatusFound)
}

func (h *SessionHandler) fail(w http.ResponseWriter, r *http.Request, api bool, status int, errs map[string][]string) {
	if api {
		writeErrors(w, status, errs)
		return
	}
	h.resp.Redirect(w, r, h.cfg.LoginPath, errs)
}
