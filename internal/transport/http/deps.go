package http

import (
	"context"
	"time"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/infrastructure/google"
	jwtinfra "github.com/ec5/ec5-api/internal/infrastructure/jwt"
	"github.com/ec5/ec5-api/internal/infrastructure/mail"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/transport/http/handler"
)

// Deps holds all infrastructure dependencies for the router. Media and
// Google are optional.
type Deps struct {
	Entries       EntryRepository
	BranchEntries EntryRepository
	Projects      ProjectRepository
	Users         UserRepository
	Flash         FlashStore
	Media         handler.MediaPurger
	GeocodeCache  GeocodeCache
	Geocoder      Geocoder
	Mailer        mail.Transport
	Tokens        TokenProvider
	Google        IdentityVerifier
	Log           logger.Logger
}

// EntryRepository is the minimal interface the router requires from an entry table.
type EntryRepository interface {
	DeleteByUUIDs(ctx context.Context, projectID int64, uuids []string) (int64, error)
}

// ProjectRepository is the minimal interface the router requires from a project store.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, projectID int64) (*domain.Project, error)
}

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// FlashStore keeps one-shot error bags across redirects.
type FlashStore interface {
	Put(ctx context.Context, errs map[string][]string) (string, error)
	Pull(ctx context.Context, flashID string) (map[string][]string, error)
}

type GeocodeCache interface {
	Get(ctx context.Context, query string) (*domain.GeocodeResult, error)
	Put(ctx context.Context, query, payload string, ttl time.Duration) error
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (string, error)
}

// TokenProvider issues and checks session tokens.
type TokenProvider interface {
	Sign(u *domain.User) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
	Expiry() time.Duration
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*google.Identity, error)
}
