package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subjectTokens treats the bearer token itself as the subject
type subjectTokens struct{}

func (subjectTokens) ValidateToken(_ context.Context, token string) (interface{}, error) {
	if token == "" || token == "expired" {
		return nil, errors.New("token rejected")
	}
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: token},
	}, nil
}

type routedEnv struct {
	*testEnv
}

func newRoutedEnv(t *testing.T) *routedEnv {
	t.Helper()
	env := newTestEnv()
	authz, err := middleware.NewAuthorizer()
	require.NoError(t, err)

	h := env.handlers
	h.WebSocket = NewWebSocketHandler(websocket.NewHub(), &stubTenantValidator{tenantID: testTenant}, testAllowedOrigins)
	RegisterRoutes(env.e,
		middleware.NewAuthMiddlewareWithValidator(subjectTokens{}, env.store.Operators),
		authz,
		middleware.NewRateLimiterWithConfig(600, 100),
		"http://localhost:8080",
		h,
	)
	return &routedEnv{testEnv: env}
}

func (env *routedEnv) do(method, target, body string, op *domain.Operator) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if op != nil {
		req.Header.Set("Authorization", "Bearer "+op.Auth0ID)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Authentication(t *testing.T) {
	env := newRoutedEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set("Authorization", "Bearer auth0|unknown")
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "unregistered subject")

	op := env.operator(testTenant, domain.RoleOperator)
	rec = env.do(http.MethodGet, "/api/v1/customers", "", op)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_RoleGates(t *testing.T) {
	env := newRoutedEnv(t)
	operator := env.operator(testTenant, domain.RoleOperator)
	manager := env.operator(testTenant, domain.RoleManager)
	admin := env.operator(testTenant, domain.RoleAdmin)
	customer := env.addCustomer(testTenant, "Ana", "12345678901")

	created := env.do(http.MethodPost, "/api/v1/loans", fmt.Sprintf(`{"customerId": %d, "principal": "1000", "rateTier": 30, "startDate": "2025-03-03"}`, customer.ID), operator)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var loan LoanDetailResponse
	decodeJSON(t, created, &loan)
	schedule := fmt.Sprintf("/api/v1/loans/%d/schedule", loan.Loan.ID)
	regenerate := `{"principal": "1000", "rateTier": 60, "startDate": "2025-03-03"}`
	settings := `{"toleranceDays": 3, "penaltyRate": "10", "monthlyInterestRate": "2"}`

	tests := []struct {
		name   string
		method string
		target string
		body   string
		op     *domain.Operator
		status int
	}{
		{"operator reads settings", http.MethodGet, "/api/v1/settings", "", operator, http.StatusOK},
		{"operator cannot write settings", http.MethodPut, "/api/v1/settings", settings, operator, http.StatusForbidden},
		{"manager writes settings", http.MethodPut, "/api/v1/settings", settings, manager, http.StatusOK},
		{"operator cannot read reports", http.MethodGet, "/api/v1/reports/kpis", "", operator, http.StatusForbidden},
		{"manager reads reports", http.MethodGet, "/api/v1/reports/kpis", "", manager, http.StatusOK},
		{"admin inherits reports", http.MethodGet, "/api/v1/reports/dashboard", "", admin, http.StatusOK},
		{"operator cannot regenerate", http.MethodPut, schedule, regenerate, operator, http.StatusForbidden},
		{"manager regenerates", http.MethodPut, schedule, regenerate, manager, http.StatusOK},
		{"manager cannot list operators", http.MethodGet, "/api/v1/operators", "", manager, http.StatusForbidden},
		{"admin lists operators", http.MethodGet, "/api/v1/operators", "", admin, http.StatusOK},
		{"anyone reads themselves", http.MethodGet, "/api/v1/operators/me", "", operator, http.StatusOK},
		{"manager inherits loans", http.MethodGet, "/api/v1/loans/calendar", "", manager, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.target, tt.body, tt.op)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRoutes_OpenAPISpec(t *testing.T) {
	env := newRoutedEnv(t)

	rec := env.do(http.MethodGet, "/swagger/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/installments/{id}/settle")
}

// Every /api/v1 route must be documented, and nothing documented may be unrouted
func TestRoutes_MatchOpenAPIPaths(t *testing.T) {
	env := newRoutedEnv(t)

	rec := env.do(http.MethodGet, "/swagger/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	documented := make(map[string]bool)
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	routed := make(map[string]bool)
	for _, r := range env.e.Routes() {
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		default:
			continue
		}
		path, ok := strings.CutPrefix(r.Path, "/api/v1")
		if !ok || path == "" || strings.Contains(path, "*") {
			continue
		}
		segments := strings.Split(path, "/")
		for i, s := range segments {
			if strings.HasPrefix(s, ":") {
				segments[i] = "{" + s[1:] + "}"
			}
		}
		routed[r.Method+" "+strings.Join(segments, "/")] = true
	}

	assert.Equal(t, documented, routed)
}
