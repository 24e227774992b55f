package websocket

import (
	"context"
	"errors"

	"github.com/dafibh/tally/tally-backend/internal/middleware"
)

var (
	// ErrInvalidToken is returned when the feed token does not verify
	ErrInvalidToken = errors.New("invalid token")
	// ErrOperatorUnknown is returned when the token subject is not a registered operator
	ErrOperatorUnknown = errors.New("operator not registered")
)

// TenantLookup resolves the tenant an Auth0 subject operates in
type TenantLookup interface {
	TenantIDForAuth0ID(ctx context.Context, auth0ID string) (int32, error)
}

// FeedAuthenticator admits a feed connection from the token in its query string.
// Browsers cannot set headers on a websocket upgrade, so the REST bearer token travels there instead.
type FeedAuthenticator struct {
	tokens  middleware.TokenValidator
	tenants TenantLookup
}

func NewFeedAuthenticator(tokens middleware.TokenValidator, tenants TenantLookup) *FeedAuthenticator {
	return &FeedAuthenticator{tokens: tokens, tenants: tenants}
}

// ValidateToken returns the tenant whose feed the token may read
func (a *FeedAuthenticator) ValidateToken(ctx context.Context, token string) (int32, error) {
	subject, err := middleware.Subject(ctx, a.tokens, token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	tenantID, err := a.tenants.TenantIDForAuth0ID(ctx, subject)
	if err != nil {
		return 0, ErrOperatorUnknown
	}
	return tenantID, nil
}
