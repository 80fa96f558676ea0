package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/infrastructure/google"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *domain.User
}

type Service interface {
	// Login checks an email/password pair against an active user.
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	// LoginWithGoogle accepts a Google ID token whose verified email belongs
	// to an active user.
	LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenSigner interface {
	Sign(u *domain.User) (string, error)
	Expiry() time.Duration
}

type identityVerifier interface {
	Verify(ctx context.Context, token string) (*google.Identity, error)
}

type service struct {
	users    userStore
	signer   tokenSigner
	verifier identityVerifier
}

// NewService builds the session service. verifier may be nil when Google
// sign-in is not configured.
func NewService(users userStore, signer tokenSigner, verifier identityVerifier) Service {
	return &service{users: users, signer: signer, verifier: verifier}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	u, err := s.activeUser(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, domain.InvalidCredentials(errors.New("no local password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.InvalidCredentials(err)
	}
	return s.issue(u)
}

func (s *service) LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.verifier == nil {
		return nil, domain.InvalidCredentials(errors.New("google sign-in disabled"))
	}
	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, domain.InvalidCredentials(err)
	}
	u, err := s.activeUser(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *service) activeUser(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.InvalidCredentials(err)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u.State != domain.UserStateActive {
		return nil, domain.InvalidCredentials(fmt.Errorf("user state %q", u.State))
	}
	return u, nil
}

func (s *service) issue(u *domain.User) (*LoginResult, error) {
	token, err := s.signer.Sign(u)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresIn: s.signer.Expiry(), User: u}, nil
}
