package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleIssuer = "https://accounts.google.com"

// ErrFederationFailed is the single failure kind for federated login.
// Provider internals are wrapped behind it and never reach clients.
var ErrFederationFailed = errors.New("federation failed")

// GoogleIdentity is the identity assertion resolved from a verified
// Google id_token.
type GoogleIdentity struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
	AvatarURL  string
}

// GoogleFederator exchanges authorization codes with Google and verifies
// the returned id_token.
type GoogleFederator struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewGoogleFederator discovers the Google OIDC endpoints and prepares the
// oauth2 client configuration.
func NewGoogleFederator(ctx context.Context, clientID, clientSecret, redirectURI string) (*GoogleFederator, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}

	return &GoogleFederator{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     endpoints.Google,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Exchange trades the authorization code for tokens and resolves the
// identity assertion from the verified id_token. Every failure mode,
// network, invalid code, signature or audience mismatch, collapses into
// ErrFederationFailed.
func (g *GoogleFederator) Exchange(ctx context.Context, code string) (GoogleIdentity, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("%w: exchange: %v", ErrFederationFailed, err)
	}

	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return GoogleIdentity{}, fmt.Errorf("%w: no id_token in response", ErrFederationFailed)
	}

	idTok, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("%w: verify id_token: %v", ErrFederationFailed, err)
	}

	var claims struct {
		Sub        string `json:"sub"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := idTok.Claims(&claims); err != nil {
		return GoogleIdentity{}, fmt.Errorf("%w: read claims: %v", ErrFederationFailed, err)
	}
	if claims.Email == "" {
		return GoogleIdentity{}, fmt.Errorf("%w: assertion missing email", ErrFederationFailed)
	}

	return GoogleIdentity{
		Subject:    claims.Sub,
		Email:      claims.Email,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
		AvatarURL:  claims.Picture,
	}, nil
}
