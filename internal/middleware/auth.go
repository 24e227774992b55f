package middleware

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

var errInvalidClaims = errors.New("invalid claims")

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// Auth0IDKey is the context key for the Auth0 subject
	Auth0IDKey contextKey = "auth0_id"
	// OperatorKey is the context key for the authenticated operator
	OperatorKey contextKey = "operator"
)

// OperatorProvider resolves the JWT subject to an operator
type OperatorProvider interface {
	GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.Operator, error)
}

// TokenValidator validates a raw bearer token. *validator.Validator satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	validator        TokenValidator
	operatorProvider OperatorProvider
}

// NewAuth0Validator builds the RS256 validator for the tenant's Auth0 API.
// The same instance serves the REST middleware and the live feed.
func NewAuth0Validator(domain, audience string) (*validator.Validator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	keys := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	return validator.New(
		keys.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &CustomClaims{} }),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// Subject validates token and returns the subject it was issued to
func Subject(ctx context.Context, v TokenValidator, token string) (string, error) {
	claims, err := v.ValidateToken(ctx, token)
	if err != nil {
		return "", err
	}
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return "", errInvalidClaims
	}
	return validated.RegisteredClaims.Subject, nil
}

// NewAuthMiddlewareWithValidator builds the middleware around an existing validator
func NewAuthMiddlewareWithValidator(v TokenValidator, operatorProvider OperatorProvider) *AuthMiddleware {
	return &AuthMiddleware{validator: v, operatorProvider: operatorProvider}
}

// Authenticate returns an Echo middleware that validates the bearer token and
// loads the operator it belongs to
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "invalid authorization header format")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, errInvalidClaims.Error())
			}

			auth0ID := validatedClaims.RegisteredClaims.Subject
			ctx := context.WithValue(c.Request().Context(), ClaimsKey, validatedClaims)
			ctx = context.WithValue(ctx, Auth0IDKey, auth0ID)

			operator, err := m.operatorProvider.GetByAuth0ID(ctx, auth0ID)
			if err != nil {
				log.Debug().Err(err).Str("auth0_id", auth0ID).Msg("Operator lookup failed")
				return unauthorizedError(c, "operator not registered")
			}
			ctx = context.WithValue(ctx, OperatorKey, operator)

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetAuth0ID extracts the Auth0 subject from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the validated claims from the context
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}

// GetOperator extracts the authenticated operator from the context
func GetOperator(c echo.Context) *domain.Operator {
	if op, ok := c.Request().Context().Value(OperatorKey).(*domain.Operator); ok {
		return op
	}
	return nil
}

// GetTenantID extracts the operator's tenant ID from the context
func GetTenantID(c echo.Context) int32 {
	if op := GetOperator(c); op != nil {
		return op.TenantID
	}
	return 0
}

// GetOperatorID extracts the operator ID from the context
func GetOperatorID(c echo.Context) uuid.UUID {
	if op := GetOperator(c); op != nil {
		return op.ID
	}
	return uuid.Nil
}

// GetActor builds the actor passed into core operations
func GetActor(c echo.Context) domain.Actor {
	op := GetOperator(c)
	if op == nil {
		return domain.Actor{}
	}
	return domain.Actor{TenantID: op.TenantID, OperatorID: op.ID, Role: op.Role}
}

// WithOperator returns ctx carrying operator, as Authenticate would
func WithOperator(ctx context.Context, operator *domain.Operator) context.Context {
	ctx = context.WithValue(ctx, Auth0IDKey, operator.Auth0ID)
	return context.WithValue(ctx, OperatorKey, operator)
}
