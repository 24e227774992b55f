package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// OperatorHandler handles operator HTTP requests
type OperatorHandler struct {
	operatorService *service.OperatorService
}

// NewOperatorHandler creates a new OperatorHandler
func NewOperatorHandler(operatorService *service.OperatorService) *OperatorHandler {
	return &OperatorHandler{operatorService: operatorService}
}

// OperatorRequest represents the create and update operator request body
type OperatorRequest struct {
	Auth0ID string `json:"auth0Id" validate:"max=255"`
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required,oneof=operator manager admin"`
}

func (r *OperatorRequest) toInput() service.OperatorInput {
	return service.OperatorInput{
		Auth0ID: strings.TrimSpace(r.Auth0ID),
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Role:    domain.Role(r.Role),
	}
}

func parseOperatorID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// GetMe handles GET /api/v1/operators/me
// @Summary The authenticated operator
// @Tags operators
// @Produce json
// @Success 200 {object} OperatorResponse
// @Router /operators/me [get]
func (h *OperatorHandler) GetMe(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	op, err := h.operatorService.Me(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err, "Failed to get operator")
	}

	return c.JSON(http.StatusOK, toOperatorResponse(op))
}

// ListOperators handles GET /api/v1/operators
// @Summary List the tenant's operators
// @Tags operators
// @Produce json
// @Success 200 {array} OperatorResponse
// @Failure 403 {object} ProblemDetails
// @Router /operators [get]
func (h *OperatorHandler) ListOperators(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	ops, err := h.operatorService.ListOperators(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err, "Failed to list operators")
	}

	response := make([]OperatorResponse, len(ops))
	for i, op := range ops {
		response[i] = toOperatorResponse(op)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateOperator handles POST /api/v1/operators
// @Summary Add an operator to the tenant
// @Tags operators
// @Accept json
// @Produce json
// @Param operator body OperatorRequest true "Operator"
// @Success 201 {object} OperatorResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /operators [post]
func (h *OperatorHandler) CreateOperator(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	var req OperatorRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	op, err := h.operatorService.CreateOperator(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return respondError(c, err, "Failed to create operator")
	}

	return c.JSON(http.StatusCreated, toOperatorResponse(op))
}

// UpdateOperator handles PUT /api/v1/operators/:id
// @Summary Edit an operator
// @Tags operators
// @Accept json
// @Produce json
// @Param id path string true "Operator ID"
// @Param operator body OperatorRequest true "Operator"
// @Success 200 {object} OperatorResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /operators/{id} [put]
func (h *OperatorHandler) UpdateOperator(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseOperatorID(c)
	if !ok {
		return NewValidationError(c, "Invalid operator ID", nil)
	}

	var req OperatorRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	op, err := h.operatorService.UpdateOperator(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return respondError(c, err, "Failed to update operator")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Str("operator_id", id.String()).Str("role", string(op.Role)).Msg("Operator updated")

	return c.JSON(http.StatusOK, toOperatorResponse(op))
}

// DeleteOperator handles DELETE /api/v1/operators/:id
// @Summary Remove an operator
// @Tags operators
// @Param id path string true "Operator ID"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /operators/{id} [delete]
func (h *OperatorHandler) DeleteOperator(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	id, ok := parseOperatorID(c)
	if !ok {
		return NewValidationError(c, "Invalid operator ID", nil)
	}

	if err := h.operatorService.DeleteOperator(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err, "Failed to delete operator")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Str("operator_id", id.String()).Msg("Operator deleted")

	return c.NoContent(http.StatusNoContent)
}
