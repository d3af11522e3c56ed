package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkrv/cashflow_app/internal/core/domain"
	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/dto"
	"github.com/mkrv/cashflow_app/internal/middleware"
)

// projectionHandler handles HTTP requests for projected movements.
type projectionHandler struct {
	projectionService portssvc.ProjectionSvc
}

// newProjectionHandler creates a new projectionHandler.
func newProjectionHandler(ps portssvc.ProjectionSvc) *projectionHandler {
	return &projectionHandler{projectionService: ps}
}

// registerProjectionRoutes registers routes related to projections.
func registerProjectionRoutes(rg *gin.RouterGroup, projectionService portssvc.ProjectionSvc) {
	h := newProjectionHandler(projectionService)

	projection := rg.Group("/projection")
	{
		projection.GET("", h.getProjection)
		projection.GET("/combined", h.getCombinedProjection)
	}
}

// parseUntil parses the optional until query parameter. Rows on or after the
// cutoff are excluded from the response.
func parseUntil(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

// getProjection godoc
// @Summary Project account balances
// @Description Derives the movement ledger with running balances. scenarioID selects a what-if overlay (empty for the baseline); accountID narrows the output to one account; until excludes rows on or after the given date. Unknown scenario or account ids yield an empty result.
// @Tags projection
// @Produce  json
// @Param   scenarioID query string false "Scenario overlay"
// @Param   accountID query string false "Restrict to one account"
// @Param   until query string false "Exclusive cutoff date (YYYY-MM-DD)"
// @Success 200 {array} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute projection"
// @Router /projection [get]
func (h *projectionHandler) getProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ProjectionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for projection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	until, err := parseUntil(params.Until)
	if err != nil {
		logger.Warn("Invalid until parameter", slog.String("until", params.Until))
		c.JSON(http.StatusBadRequest, gin.H{"error": "until must be formatted as YYYY-MM-DD"})
		return
	}

	movements, err := h.projectionService.Project(c.Request.Context(), params.ScenarioID, params.AccountID, until)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute projection")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMovementResponse(movements))
}

// getCombinedProjection godoc
// @Summary Project pooled cash and bank balances
// @Description Derives the combined ledger carrying the two pooled running balances on every row, grouped by account type rather than by account.
// @Tags projection
// @Produce  json
// @Param   until query string false "Exclusive cutoff date (YYYY-MM-DD)"
// @Success 200 {array} dto.CombinedMovementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute projection"
// @Router /projection/combined [get]
func (h *projectionHandler) getCombinedProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	until, err := parseUntil(c.Query("until"))
	if err != nil {
		logger.Warn("Invalid until parameter", slog.String("until", c.Query("until")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "until must be formatted as YYYY-MM-DD"})
		return
	}

	rows, err := h.projectionService.ProjectCombined(c.Request.Context(), until)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute projection")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCombinedMovementResponse(rows))
}
