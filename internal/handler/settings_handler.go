package handler

import (
	"net/http"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles tenant accrual settings
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the settings request body
type UpdateSettingsRequest struct {
	ToleranceDays       *int   `json:"toleranceDays" validate:"required"`
	PenaltyRate         string `json:"penaltyRate" validate:"required"`
	MonthlyInterestRate string `json:"monthlyInterestRate" validate:"required"`
}

// GetSettings handles GET /api/v1/settings
// @Summary Tenant accrual settings
// @Tags settings
// @Produce json
// @Success 200 {object} SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	tenant := tenantID(c)
	if tenant == 0 {
		return NewUnauthorizedError(c, "Operator required")
	}

	settings, err := h.settingsService.Get(c.Request().Context(), tenant)
	if err != nil {
		return respondError(c, err, "Failed to get settings")
	}

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// UpdateSettings handles PUT /api/v1/settings
// @Summary Replace tenant accrual settings
// @Description Manager or admin only. Applies to the next accrual computation.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body UpdateSettingsRequest true "Settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return NewUnauthorizedError(c, "Operator required")
	}

	var req UpdateSettingsRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}
	penalty, err := decimal.NewFromString(req.PenaltyRate)
	if err != nil {
		return NewValidationError(c, "Invalid penalty rate", []ValidationError{
			{Field: "penaltyRate", Message: "Must be a valid decimal number"},
		})
	}
	interest, err := decimal.NewFromString(req.MonthlyInterestRate)
	if err != nil {
		return NewValidationError(c, "Invalid interest rate", []ValidationError{
			{Field: "monthlyInterestRate", Message: "Must be a valid decimal number"},
		})
	}

	settings, err := h.settingsService.Update(c.Request().Context(), actor, domain.Settings{
		ToleranceDays:       *req.ToleranceDays,
		PenaltyRate:         penalty,
		MonthlyInterestRate: interest,
	})
	if err != nil {
		return respondError(c, err, "Failed to update settings")
	}

	log.Info().Int32("tenant_id", actor.TenantID).Int("tolerance_days", settings.ToleranceDays).Msg("Settings updated")

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}
