package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	balanceService  *service.BalanceService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *service.CustomerService, balanceService *service.BalanceService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, balanceService: balanceService}
}

// CustomerRequest represents the create and update customer request body
type CustomerRequest struct {
	Name             string  `json:"name" validate:"required,max=255"`
	TaxID            string  `json:"taxId" validate:"required,max=32"`
	RG               *string `json:"rg,omitempty" validate:"omitempty,max=32"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string  `json:"phone" validate:"required,max=32"`
	PhoneAlt         *string `json:"phoneAlt,omitempty" validate:"omitempty,max=32"`
	PixKey           *string `json:"pixKey,omitempty" validate:"omitempty,max=255"`
	Address          string  `json:"address" validate:"required,max=255"`
	City             string  `json:"city" validate:"required,max=100"`
	State            string  `json:"state" validate:"required,max=50"`
	ZipCode          *string `json:"zipCode,omitempty" validate:"omitempty,max=16"`
	ReferenceName    *string `json:"referenceName,omitempty" validate:"omitempty,max=255"`
	ReferencePhone   *string `json:"referencePhone,omitempty" validate:"omitempty,max=32"`
	ReferenceAddress *string `json:"referenceAddress,omitempty" validate:"omitempty,max=255"`
	Notes            *string `json:"notes,omitempty"`
	Company          *string `json:"company,omitempty" validate:"omitempty,oneof=FH1 FH2 FH3 FH4"`
}

func (r *CustomerRequest) toDomain() *domain.Customer {
	return &domain.Customer{
		Name:             strings.TrimSpace(r.Name),
		TaxID:            r.TaxID,
		RG:               blankToNil(r.RG),
		Email:            blankToNil(r.Email),
		Phone:            strings.TrimSpace(r.Phone),
		PhoneAlt:         blankToNil(r.PhoneAlt),
		PixKey:           blankToNil(r.PixKey),
		Address:          strings.TrimSpace(r.Address),
		City:             strings.TrimSpace(r.City),
		State:            strings.TrimSpace(r.State),
		ZipCode:          blankToNil(r.ZipCode),
		ReferenceName:    blankToNil(r.ReferenceName),
		ReferencePhone:   blankToNil(r.ReferencePhone),
		ReferenceAddress: blankToNil(r.ReferenceAddress),
		Notes:            blankToNil(r.Notes),
		Company:          blankToNil(r.Company),
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CreateCustomer handles POST /api/v1/customers
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body CustomerRequest true "Customer"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	var req CustomerRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	customer, err := h.customerService.CreateCustomer(c.Request().Context(), actor, req.toDomain())
	if err != nil {
		return respondError(c, err, "Failed to create customer")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("customer_id", customer.ID).Msg("Customer created")

	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// ListCustomers handles GET /api/v1/customers
// @Summary List customers with balances
// @Tags customers
// @Produce json
// @Param company query string false "Company (FH1..FH4)"
// @Param status query string false "overdue to list customers in arrears"
// @Success 200 {array} CustomerWithBalanceResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	input := service.ListCustomersInput{}
	if company := strings.TrimSpace(c.QueryParam("company")); company != "" {
		input.Company = &company
	}
	switch status := c.QueryParam("status"); status {
	case "", "all":
	case "overdue":
		input.Overdue = true
	default:
		return NewValidationError(c, "Invalid status filter", []ValidationError{
			{Field: "status", Message: "Must be one of: all overdue"},
		})
	}

	customers, err := h.customerService.ListCustomers(c.Request().Context(), tenant, input)
	if err != nil {
		return respondError(c, err, "Failed to list customers")
	}

	return c.JSON(http.StatusOK, toCustomerWithBalanceResponses(customers))
}

// GetCustomer handles GET /api/v1/customers/:id
// @Summary Get a customer with loans, installments and payment history
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} CustomerDetailResponse
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	detail, err := h.customerService.GetDetail(c.Request().Context(), tenant, id)
	if err != nil {
		return respondError(c, err, "Failed to get customer")
	}

	return c.JSON(http.StatusOK, toCustomerDetailResponse(detail))
}

// UpdateCustomer handles PUT /api/v1/customers/:id
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body CustomerRequest true "Customer"
// @Success 200 {object} CustomerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	var req CustomerRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	customer := req.toDomain()
	customer.ID = id
	updated, err := h.customerService.UpdateCustomer(c.Request().Context(), actor, customer)
	if err != nil {
		return respondError(c, err, "Failed to update customer")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("customer_id", id).Msg("Customer updated")

	return c.JSON(http.StatusOK, toCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
// @Summary Delete a customer and all of its loans
// @Tags customers
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	if err := h.customerService.DeleteCustomer(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err, "Failed to delete customer")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int32("customer_id", id).Msg("Customer deleted")

	return c.NoContent(http.StatusNoContent)
}

// GetCustomerBalance handles GET /api/v1/customers/:id/balance
// @Summary Outstanding balance across a customer's pending loans
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} BalanceResponse
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id}/balance [get]
func (h *CustomerHandler) GetCustomerBalance(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	balance, err := h.balanceService.ComputeBalanceForCustomer(c.Request().Context(), tenant, id)
	if err != nil {
		return respondError(c, err, "Failed to get customer balance")
	}

	return c.JSON(http.StatusOK, BalanceResponse{Balance: formatMoney(balance)})
}
