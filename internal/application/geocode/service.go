package geocode

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
)

type Service interface {
	// Lookup returns the upstream JSON body for query, served from cache
	// when a fresh copy exists.
	Lookup(ctx context.Context, query string) (string, error)
}

type resultCache interface {
	Get(ctx context.Context, query string) (*domain.GeocodeResult, error)
	Put(ctx context.Context, query, payload string, ttl time.Duration) error
}

type upstream interface {
	Geocode(ctx context.Context, query string) (string, error)
}

type service struct {
	cache    resultCache
	upstream upstream
	ttl      time.Duration
	log      logger.Logger
}

func NewService(cache resultCache, up upstream, ttl time.Duration, log logger.Logger) Service {
	return &service{cache: cache, upstream: up, ttl: ttl, log: log}
}

func (s *service) Lookup(ctx context.Context, query string) (string, error) {
	q := normalize(query)
	if q == "" {
		return "", domain.ValidationFailed("q", domain.CodeRequired)
	}

	res, err := s.cache.Get(ctx, q)
	switch {
	case err == nil:
		return res.Payload, nil
	case !errors.Is(err, domain.ErrNotFound):
		// a broken cache must not take the proxy down with it
		s.log.Info("geocode cache read failed", map[string]any{"query": q, "error": err})
	}

	body, err := s.upstream.Geocode(ctx, q)
	if err != nil {
		s.log.Info("geocoder upstream failed", map[string]any{"query": q, "error": err})
		return "", domain.GeocoderFailed(err)
	}
	if err := s.cache.Put(ctx, q, body, s.ttl); err != nil {
		s.log.Info("geocode cache write failed", map[string]any{"query": q, "error": err})
	}
	return body, nil
}

// normalize lowercases q and collapses runs of whitespace so equivalent
// queries share a cache item.
func normalize(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
