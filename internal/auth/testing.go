package auth

import (
	"context"
	"crypto/rsa"
	"time"
)

// ContextWithPrincipal adds a principal to the context for testing purposes
// This is exported to allow other packages to create test contexts
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// NewTestJWKS builds a JWKS preloaded with a single public key under the
// "test-key-id" kid. It never refreshes, so tests can sign tokens offline.
// The ticker and quit channel are real so Close works like on a live JWKS.
func NewTestJWKS(publicKey *rsa.PublicKey) *JWKS {
	return &JWKS{
		keys: map[string]*rsa.PublicKey{
			"test-key-id": publicKey,
		},
		ticker: time.NewTicker(time.Hour),
		quit:   make(chan struct{}),
	}
}
