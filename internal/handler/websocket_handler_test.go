package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTenantValidator struct {
	tenantID int32
	err      error
	tokens   []string
}

func (s *stubTenantValidator) ValidateToken(_ context.Context, token string) (int32, error) {
	s.tokens = append(s.tokens, token)
	return s.tenantID, s.err
}

var testAllowedOrigins = []string{"http://localhost:3000", "https://tally.app"}

func TestWebSocketHandler_HandleWS_MissingToken(t *testing.T) {
	validator := &stubTenantValidator{tenantID: 1}
	h := NewWebSocketHandler(websocket.NewHub(), validator, testAllowedOrigins)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/ws", nil), httptest.NewRecorder())
	err := h.HandleWS(c)

	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Empty(t, validator.tokens)
}

func TestWebSocketHandler_HandleWS_InvalidToken(t *testing.T) {
	validator := &stubTenantValidator{err: errors.New("bad signature")}
	h := NewWebSocketHandler(websocket.NewHub(), validator, testAllowedOrigins)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/ws?token=invalid-jwt", nil), httptest.NewRecorder())
	err := h.HandleWS(c)

	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Equal(t, []string{"invalid-jwt"}, validator.tokens)
}

func TestWebSocketHandler_HandleWS_ValidTokenWithoutUpgrade(t *testing.T) {
	hub := websocket.NewHub()
	validator := &stubTenantValidator{tenantID: 42}
	h := NewWebSocketHandler(hub, validator, testAllowedOrigins)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/ws?token=valid-jwt", nil), httptest.NewRecorder())
	err := h.HandleWS(c)

	// auth passed; the plain GET fails the protocol upgrade instead
	require.Error(t, err)
	var httpErr *echo.HTTPError
	assert.False(t, errors.As(err, &httpErr))
	assert.Equal(t, 0, hub.ClientCount(42))
}

func TestWebSocketHandler_CheckOrigin(t *testing.T) {
	h := NewWebSocketHandler(websocket.NewHub(), &stubTenantValidator{tenantID: 1}, testAllowedOrigins)

	tests := []struct {
		name     string
		origin   string
		expected bool
	}{
		{"allowed origin", "http://localhost:3000", true},
		{"allowed origin https", "https://tally.app", true},
		{"disallowed origin", "https://evil.example", false},
		{"empty origin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.expected, h.checkOrigin(req))
		})
	}
}

func TestParseFeedEntities(t *testing.T) {
	assert.Nil(t, parseFeedEntities(""))
	assert.Equal(t,
		[]websocket.EntityType{websocket.EntityTypeLoan, websocket.EntityTypeInstallment},
		parseFeedEntities("loan, installment,"),
	)
}

func TestWebSocketHandler_FeedDeliversFilteredEvents(t *testing.T) {
	hub := websocket.NewHub()
	h := NewWebSocketHandler(hub, &stubTenantValidator{tenantID: 9}, testAllowedOrigins)

	e := echo.New()
	e.GET("/ws", h.HandleWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=valid-jwt&entities=loan"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(9) == 1 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, hub.Broadcast(9, websocket.CustomerCreated(map[string]int{"id": 1})))
	assert.Equal(t, 1, hub.Broadcast(9, websocket.LoanPaid(map[string]int{"id": 2})))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt websocket.Event
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, "loan.paid", evt.Type)

	require.NoError(t, conn.WriteJSON(websocket.SubscribeMessage{}))
	require.Eventually(t, func() bool {
		return hub.Broadcast(9, websocket.CustomerUpdated(map[string]int{"id": 1})) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, "customer.updated", evt.Type)
}
