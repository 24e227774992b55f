package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://tally.app/errors/validation"
	ErrorTypeNotFound     = "https://tally.app/errors/not-found"
	ErrorTypeUnauthorized = "https://tally.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://tally.app/errors/forbidden"
	ErrorTypeConflict     = "https://tally.app/errors/conflict"
	ErrorTypeInternal     = "https://tally.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return c.JSON(http.StatusForbidden, ProblemDetails{
		Type:     ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// errorFields names the request field a validation error refers to
var errorFields = []struct {
	err   error
	field string
}{
	{domain.ErrNameRequired, "name"},
	{domain.ErrNameTooLong, "name"},
	{domain.ErrInvalidAmount, "amount"},
	{domain.ErrInvalidDueDate, "dueDate"},
	{domain.ErrInvalidRateTier, "rateTier"},
	{domain.ErrLoanDescriptionTooLong, "description"},
	{domain.ErrLoanCustomerInvalid, "customerId"},
	{domain.ErrNegativePenalty, "manualPenalty"},
	{domain.ErrPaymentMethodInvalid, "method"},
	{domain.ErrPaymentNoteTooLong, "note"},
	{domain.ErrCustomerTaxIDInvalid, "taxId"},
	{domain.ErrCustomerPhoneRequired, "phone"},
	{domain.ErrCustomerAddressRequired, "address"},
	{domain.ErrCustomerCompanyInvalid, "company"},
	{domain.ErrOperatorEmailInvalid, "email"},
	{domain.ErrOperatorRoleInvalid, "role"},
	{domain.ErrOperatorAuth0ID, "auth0Id"},
	{domain.ErrToleranceDaysInvalid, "toleranceDays"},
	{domain.ErrRateInvalid, "rates"},
}

// respondError maps a service error onto its problem response by taxonomy kind.
// Anything outside the domain is logged and reported as a generic 500.
func respondError(c echo.Context, err error, failure string) error {
	switch domain.Kind(err) {
	case domain.ErrValidation:
		var fields []ValidationError
		for _, f := range errorFields {
			if errors.Is(err, f.err) {
				fields = append(fields, ValidationError{Field: f.field, Message: err.Error()})
				break
			}
		}
		return NewValidationError(c, err.Error(), fields)
	case domain.ErrNotFound:
		return NewNotFoundError(c, err.Error())
	case domain.ErrConflict:
		return NewConflictError(c, err.Error())
	case domain.ErrForbidden:
		return NewForbiddenError(c, err.Error())
	case domain.ErrUnauthorized:
		return NewUnauthorizedError(c, err.Error())
	}

	log.Error().Err(err).Int32("tenant_id", tenantID(c)).Str("path", c.Path()).Msg(failure)
	return NewInternalError(c, failure)
}
