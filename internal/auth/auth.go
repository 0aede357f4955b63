// Package auth implements the authentication collaborator via OpenID
// Connect. Login exchanges site-supervisor credentials for tokens through
// the resource owner password grant; API requests present the resulting
// access token as a bearer credential.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/fieldsafe/ramspack/pkg/lifecycle"
)

// Identity describes a verified caller.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Token is the result of a successful login.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Identity     Identity  `json:"identity"`
}

// System defines the public contract for authentication operations.
type System interface {
	Handler() *Handler

	Start(lc *lifecycle.Coordinator) error
	Login(ctx context.Context, email, password string) (*Token, error)
	Verify(ctx context.Context, rawToken string) (*Identity, error)
	Enabled() bool
}

type service struct {
	cfg    *Config
	logger *slog.Logger

	mu       sync.RWMutex
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    *oauth2.Config
}

// New creates an authentication system. Provider discovery is deferred to
// Start so construction never touches the network.
func New(cfg *Config, logger *slog.Logger) System {
	return &service{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Enabled() bool {
	return s.cfg.Enabled
}

// Start registers a startup hook that performs OIDC discovery against the
// configured issuer. Discovery failure is logged and leaves the system in
// the not-ready state; login attempts then fail until restart.
func (s *service) Start(lc *lifecycle.Coordinator) error {
	if !s.cfg.Enabled {
		s.logger.Info("auth disabled, requests pass through")
		return nil
	}

	s.logger.Info("starting auth system", "issuer", s.cfg.IssuerURL)

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), s.cfg.IssuerURL)
		if err != nil {
			s.logger.Error("oidc discovery failed", "issuer", s.cfg.IssuerURL, "error", err)
			return
		}

		s.mu.Lock()
		s.provider = provider
		s.verifier = provider.Verifier(&oidc.Config{ClientID: s.cfg.ClientID})
		s.oauth = &oauth2.Config{
			ClientID:     s.cfg.ClientID,
			ClientSecret: s.cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       s.cfg.Scopes,
		}
		s.mu.Unlock()

		s.logger.Info("auth provider ready", "issuer", s.cfg.IssuerURL)
	})

	return nil
}

// Login exchanges credentials for tokens via the password grant. Provider
// rejections surface as ErrInvalidCredentials; the identity is taken from
// the verified ID token claims.
func (s *service) Login(ctx context.Context, email, password string) (*Token, error) {
	s.mu.RLock()
	oauth, verifier := s.oauth, s.verifier
	s.mu.RUnlock()

	if oauth == nil {
		return nil, ErrNotReady
	}

	token, err := oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		s.logger.Warn("login rejected", "email", email)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	identity := Identity{Email: email}
	if raw, ok := token.Extra("id_token").(string); ok {
		idToken, err := verifier.Verify(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("verify id token: %w", err)
		}

		var claims struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&claims); err != nil {
			return nil, fmt.Errorf("decode id token claims: %w", err)
		}

		identity.Subject = idToken.Subject
		if claims.Email != "" {
			identity.Email = claims.Email
		}
		identity.Name = claims.Name
	}

	s.logger.Info("login succeeded", "subject", identity.Subject, "email", identity.Email)

	return &Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		Identity:     identity,
	}, nil
}

// Verify validates a bearer token against the provider and returns the
// caller's identity.
func (s *service) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	s.mu.RLock()
	verifier := s.verifier
	s.mu.RUnlock()

	if verifier == nil {
		return nil, ErrNotReady
	}

	idToken, err := verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	return &Identity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
