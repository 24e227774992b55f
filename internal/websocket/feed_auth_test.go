package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/stretchr/testify/assert"
)

// tokenTable maps raw tokens to the claims they verify to
type tokenTable map[string]interface{}

func (tt tokenTable) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	claims, ok := tt[token]
	if !ok {
		return nil, errors.New("signature invalid")
	}
	return claims, nil
}

type tenantTable map[string]int32

func (t tenantTable) TenantIDForAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	if id, ok := t[auth0ID]; ok {
		return id, nil
	}
	return 0, errors.New("no rows")
}

func subjectClaims(sub string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{RegisteredClaims: validator.RegisteredClaims{Subject: sub}}
}

func TestFeedAuthenticator_ValidateToken(t *testing.T) {
	auth := NewFeedAuthenticator(
		tokenTable{
			"ana":      subjectClaims("auth0|ana"),
			"stranger": subjectClaims("auth0|stranger"),
			"anon":     subjectClaims(""),
			"opaque":   map[string]string{"sub": "auth0|ana"},
		},
		tenantTable{"auth0|ana": 4},
	)

	tests := []struct {
		token    string
		tenantID int32
		err      error
	}{
		{"ana", 4, nil},
		{"forged", 0, ErrInvalidToken},
		{"anon", 0, ErrInvalidToken},
		{"opaque", 0, ErrInvalidToken},
		{"stranger", 0, ErrOperatorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			tenantID, err := auth.ValidateToken(context.Background(), tt.token)
			assert.Equal(t, tt.tenantID, tenantID)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
