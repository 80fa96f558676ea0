package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtinfra "github.com/ec5/ec5-api/internal/infrastructure/jwt"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{ ok bool }

func (s stubVerifier) Verify(string) (*jwtinfra.Claims, error) {
	if s.ok {
		return &jwtinfra.Claims{UserID: 1}, nil
	}
	return nil, errors.New("bad token")
}

func TestHome_ShowsFlashedErrorOnce(t *testing.T) {
	flash := newMemFlash()
	id, err := flash.Put(context.Background(), map[string][]string{"middleware": {"ec5_91"}})
	require.NoError(t, err)
	h := NewHomeHandler(flash, stubVerifier{}, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.FlashCookie, Value: id})
	rr := httptest.NewRecorder()
	h.Show(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "You do not have permission to perform this action.")
	assert.Contains(t, rr.Body.String(), `href="/login"`)

	rr = httptest.NewRecorder()
	h.Show(rr, req)
	assert.NotContains(t, rr.Body.String(), "ec5_91")
}

func TestHome_UnknownCodeShownVerbatim(t *testing.T) {
	flash := newMemFlash()
	id, _ := flash.Put(context.Background(), map[string][]string{"middleware": {"ec5_999"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.FlashCookie, Value: id})
	rr := httptest.NewRecorder()
	NewHomeHandler(flash, stubVerifier{}, logger.Nop()).Show(rr, req)

	assert.Contains(t, rr.Body.String(), `<li data-code="ec5_999">ec5_999</li>`)
}

func TestHome_LoggedIn(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "tok"})
	rr := httptest.NewRecorder()
	NewHomeHandler(newMemFlash(), stubVerifier{ok: true}, logger.Nop()).Show(rr, req)

	assert.Contains(t, rr.Body.String(), `action="/logout"`)
}

func TestHealth_Ping(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/health-check/{action}", NewHealthHandler().Ping)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health-check/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health-check/other", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
