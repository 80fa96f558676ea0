package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
)

const (
	// FlashCookie carries the id of a flashed error bag across a redirect.
	FlashCookie = "ec5_flash"
	// JSONAPIContentType is the media type of every error body.
	JSONAPIContentType = "application/vnd.api+json"

	middlewareKey = "middleware"
)

// Flasher stores an error bag for the next request to read once.
type Flasher interface {
	Put(ctx context.Context, errs map[string][]string) (string, error)
}

// ErrorResponder turns an error code into either a JSON error body or a
// redirect carrying the code as a flashed error.
type ErrorResponder struct {
	isAPI     func(*http.Request) bool
	flash     Flasher
	loginPath string
	homePath  string
	log       logger.Logger
}

func NewErrorResponder(isAPI func(*http.Request) bool, flash Flasher, loginPath, homePath string, log logger.Logger) *ErrorResponder {
	return &ErrorResponder{
		isAPI:     isAPI,
		flash:     flash,
		loginPath: loginPath,
		homePath:  homePath,
		log:       log,
	}
}

// Respond writes code for r. API requests get status and
// {"errors":{"middleware":[code]}}; browsers are sent to the login page for
// authentication codes and to the home page for anything else. Codes are
// not checked against the catalogue.
func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, code string, status int) {
	errs := map[string][]string{middlewareKey: {code}}
	if e.isAPI(r) {
		WriteErrors(w, status, errs)
		return
	}
	dest := e.homePath
	if domain.RequiresLogin(code) {
		dest = e.loginPath
	}
	e.Redirect(w, r, dest, errs)
}

// Redirect sends the browser to dest with errs flashed for the next page.
// If the bag cannot be stored the redirect still happens, without it.
func (e *ErrorResponder) Redirect(w http.ResponseWriter, r *http.Request, dest string, errs map[string][]string) {
	if e.flash != nil && len(errs) > 0 {
		flashID, err := e.flash.Put(r.Context(), errs)
		if err != nil {
			e.log.Info("flash store failed", map[string]any{"path": r.URL.Path, "error": err})
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     FlashCookie,
				Value:    flashID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}
	http.Redirect(w, r, dest, http.StatusFound)
}

// WriteErrors writes a JSON-API error body {"errors": errs}.
func WriteErrors(w http.ResponseWriter, status int, errs map[string][]string) {
	w.Header().Set("Content-Type", JSONAPIContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": errs})
}
