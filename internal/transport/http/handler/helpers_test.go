package handler

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	jwtinfra "github.com/ec5/ec5-api/internal/infrastructure/jwt"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
)

// memFlash is an in-memory flash bag store.
type memFlash struct {
	mu   sync.Mutex
	bags map[string]map[string][]string
	seq  int
}

func newMemFlash() *memFlash { return &memFlash{bags: map[string]map[string][]string{}} }

func (f *memFlash) Put(_ context.Context, errs map[string][]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := "flash-" + strconv.Itoa(f.seq)
	f.bags[id] = errs
	return id, nil
}

func (f *memFlash) Pull(_ context.Context, id string) (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := f.bags[id]
	delete(f.bags, id)
	return errs, nil
}

func newTestResponder(f middleware.Flasher) *middleware.ErrorResponder {
	return middleware.NewErrorResponder(middleware.IsAPIRequest, f, "/login", "/", logger.Nop())
}

// withUser injects claims for userID the way the auth middleware does.
func withUser(userID int64, email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := &jwtinfra.Claims{UserID: userID, Email: email}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), middleware.ClaimsKey, claims)))
		})
	}
}

func cookieNamed(cs []*http.Cookie, name string) *http.Cookie {
	for _, c := range cs {
		if c.Name == name {
			return c
		}
	}
	return nil
}
