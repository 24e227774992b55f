package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/dafibh/tally/tally-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testTenant int32 = 1

// testEnv wires every handler over one mock store
type testEnv struct {
	e        *echo.Echo
	store    *testutil.MockStore
	events   *testutil.MockEventPublisher
	handlers Handlers
}

func newTestEnv() *testEnv {
	store := testutil.NewMockStore()
	events := testutil.NewMockEventPublisher()

	customers := service.NewCustomerService(store.Customers, store.Loans, store.Installments, store.History, store.Settings)
	customers.SetEventPublisher(events)
	loans := service.NewLoanService(store.Loans, store.Customers, store.Installments, store.Settings)
	loans.SetEventPublisher(events)
	ledger := service.NewLedgerService(store.Ledger, store.Installments, store.Payments, store.Loans, store.Notifications)
	ledger.SetEventPublisher(events)
	settings := service.NewSettingsService(store.Settings)
	settings.SetEventPublisher(events)
	balances := service.NewBalanceService(store.Customers, store.Loans, store.Installments)

	e := echo.New()
	e.Validator = NewRequestValidator()

	return &testEnv{
		e:      e,
		store:  store,
		events: events,
		handlers: Handlers{
			Customers: NewCustomerHandler(customers, balances),
			Loans:     NewLoanHandler(loans, balances),
			Ledger:    NewLedgerHandler(ledger),
			Reports:   NewReportHandler(service.NewReportService(store.Customers, store.Loans, store.Installments, store.Payments)),
			Settings:  NewSettingsHandler(settings),
			Operators: NewOperatorHandler(service.NewOperatorService(store.Operators)),
		},
	}
}

// operator registers an operator of the given role in tenantID
func (env *testEnv) operator(tenantID int32, role domain.Role) *domain.Operator {
	id := uuid.New()
	op := &domain.Operator{
		ID:       id,
		TenantID: tenantID,
		Auth0ID:  "auth0|" + id.String(),
		Name:     "Test " + string(role),
		Email:    string(role) + "-" + id.String()[:8] + "@tally.test",
		Role:     role,
	}
	env.store.Operators.AddOperator(op)
	return op
}

// newContext builds a request context; op may be nil for anonymous calls.
// params alternate name, value.
func (env *testEnv) newContext(method, target, body string, op *domain.Operator, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if op != nil {
		req = req.WithContext(middleware.WithOperator(req.Context(), op))
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

func (env *testEnv) addCustomer(tenantID int32, name, taxID string) *domain.Customer {
	c := &domain.Customer{
		TenantID: tenantID,
		Name:     name,
		TaxID:    taxID,
		Phone:    "11999990000",
		Address:  "Rua A, 1",
		City:     "Santos",
		State:    "SP",
	}
	env.store.Customers.AddCustomer(c)
	return c
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	decodeJSON(t, rec, &problem)
	return problem
}

// createLoan posts a loan through the handler and returns the decoded detail
func (env *testEnv) createLoan(t *testing.T, op *domain.Operator, customerID int32, body string) LoanDetailResponse {
	t.Helper()
	if body == "" {
		body = fmt.Sprintf(`{"customerId": %d, "description": "Test loan", "principal": "1000", "rateTier": 30, "startDate": "2025-03-03"}`, customerID)
	}
	c, rec := env.newContext(http.MethodPost, "/api/v1/loans", body, op)
	require.NoError(t, env.handlers.Loans.CreateLoan(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var detail LoanDetailResponse
	decodeJSON(t, rec, &detail)
	return detail
}

// futureDate returns an allowed due date a month from now
func futureDate() string {
	return formatDate(domain.NextAllowedDueDate(domain.DateOnly(time.Now().AddDate(0, 1, 0))))
}
