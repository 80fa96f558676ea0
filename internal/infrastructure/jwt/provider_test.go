package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeys(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath = filepath.Join(dir, "private.pem")
	pubPath = filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))
	return privPath, pubPath
}

func newProvider(t *testing.T, expiry time.Duration) *Provider {
	t.Helper()
	privPath, pubPath := writeKeys(t)
	p, err := NewProvider(&config.Config{JWTPrivateKeyPath: privPath, JWTPublicKeyPath: pubPath, JWTExpiry: expiry})
	require.NoError(t, err)
	return p
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newProvider(t, time.Hour)

	signed, err := p.Sign(&domain.User{ID: 4, Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)

	claims, err := p.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "4", claims.Subject)
}

func TestVerify_Expired(t *testing.T) {
	p := newProvider(t, -time.Minute)

	signed, err := p.Sign(&domain.User{ID: 4})
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_ForeignKey(t *testing.T) {
	signer := newProvider(t, time.Hour)
	verifier := newProvider(t, time.Hour)

	signed, err := signer.Sign(&domain.User{ID: 4})
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTPrivateKeyPath: filepath.Join(t.TempDir(), "nope.pem")})
	assert.ErrorContains(t, err, "private key")
}
