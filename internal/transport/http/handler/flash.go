package handler

import (
	"context"
	"net/http"

	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
)

// FlashReader reads a flashed error bag exactly once.
type FlashReader interface {
	Pull(ctx context.Context, flashID string) (map[string][]string, error)
}

// pullFlash returns the errors flashed by the previous response, if any,
// and expires the cookie that pointed at them.
func pullFlash(w http.ResponseWriter, r *http.Request, store FlashReader, log logger.Logger) map[string][]string {
	c, err := r.Cookie(middleware.FlashCookie)
	if err != nil || c.Value == "" || store == nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: middleware.FlashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	errs, err := store.Pull(r.Context(), c.Value)
	if err != nil {
		log.Info("flash read failed", map[string]any{"error": err})
		return nil
	}
	return errs
}
