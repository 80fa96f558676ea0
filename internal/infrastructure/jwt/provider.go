package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired is returned by Verify when the token was valid but has expired.
var ErrExpired = errors.New("token expired")

// Claims holds the JWT payload fields.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs.
type Provider struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	expiry     time.Duration
}

// NewProvider loads the RS256 key pair named in cfg.
func NewProvider(cfg *config.Config) (*Provider, error) {
	priv, err := readPEM(cfg.JWTPrivateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	pub, err := readPEM(cfg.JWTPublicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return &Provider{privateKey: priv, publicKey: pub, expiry: cfg.JWTExpiry}, nil
}

func readPEM[K any](path string, parse func([]byte) (K, error)) (K, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		var zero K
		return zero, err
	}
	return parse(raw)
}

// Expiry is how long issued tokens stay valid.
func (p *Provider) Expiry() time.Duration { return p.expiry }

func (p *Provider) Sign(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(p.privateKey)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrExpired
	}
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
