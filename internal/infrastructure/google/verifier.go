package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/ec5/ec5-api/internal/domain"
	"google.golang.org/api/idtoken"
)

// Identity is the verified Google account behind an ID token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks Google ID tokens issued for one OAuth client.
type Verifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates token and returns the account identity. Tokens whose
// email Google has not verified are rejected; the email is the only link to
// an ec5 account.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	p, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	return identityFromClaims(p)
}

func identityFromClaims(p *idtoken.Payload) (*Identity, error) {
	email, _ := p.Claims["email"].(string)
	verified, _ := p.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, fmt.Errorf("google email not verified: %w", domain.ErrUnauthorized)
	}
	name, _ := p.Claims["name"].(string)
	return &Identity{
		Subject: p.Subject,
		Email:   strings.ToLower(email),
		Name:    name,
	}, nil
}
