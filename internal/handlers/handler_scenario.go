package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/dto"
	"github.com/mkrv/cashflow_app/internal/middleware"
)

// scenarioHandler handles HTTP requests related to scenarios and overrides.
type scenarioHandler struct {
	scenarioService portssvc.ScenarioSvc
}

// newScenarioHandler creates a new scenarioHandler.
func newScenarioHandler(ss portssvc.ScenarioSvc) *scenarioHandler {
	return &scenarioHandler{scenarioService: ss}
}

// registerScenarioRoutes registers routes related to scenarios.
func registerScenarioRoutes(rg *gin.RouterGroup, scenarioService portssvc.ScenarioSvc) {
	h := newScenarioHandler(scenarioService)

	scenarios := rg.Group("/scenarios")
	{
		scenarios.POST("", h.upsertScenario)
		scenarios.GET("", h.listScenarios)
		scenarios.DELETE("/:id", h.deleteScenario)

		scenarios.POST("/:id/overrides/recurring", h.upsertRecurringOverride)
		scenarios.POST("/:id/overrides/single", h.upsertSingleOverride)
		scenarios.DELETE("/:id/overrides/recurring/:overrideID", h.deleteRecurringOverride)
		scenarios.DELETE("/:id/overrides/single/:overrideID", h.deleteSingleOverride)
	}
}

// upsertScenario godoc
// @Summary Create or update a scenario
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   scenario body dto.UpsertScenarioRequest true "Scenario details"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Scenario name already in use"
// @Failure 500 {object} map[string]string "Failed to save scenario"
// @Router /scenarios [post]
func (h *scenarioHandler) upsertScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertScenario", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	scenario, err := h.scenarioService.UpsertScenario(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save scenario")
		return
	}

	logger.Info("Scenario saved", slog.String("scenario_id", scenario.ScenarioID))
	c.JSON(http.StatusOK, dto.ToScenarioResponse(scenario))
}

// listScenarios godoc
// @Summary List scenarios
// @Tags scenarios
// @Produce  json
// @Success 200 {array} dto.ScenarioResponse
// @Failure 500 {object} map[string]string "Failed to list scenarios"
// @Router /scenarios [get]
func (h *scenarioHandler) listScenarios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scenarios, err := h.scenarioService.ListScenarios(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list scenarios")
		return
	}

	c.JSON(http.StatusOK, dto.ToListScenarioResponse(scenarios))
}

// deleteScenario godoc
// @Summary Delete a scenario
// @Description Removes a scenario and, via cascade, its overrides. The baseline is unaffected.
// @Tags scenarios
// @Produce  json
// @Param   id path string true "Scenario ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 500 {object} map[string]string "Failed to delete scenario"
// @Router /scenarios/{id} [delete]
func (h *scenarioHandler) deleteScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scenarioID := c.Param("id")

	if err := h.scenarioService.DeleteScenario(c.Request.Context(), scenarioID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete scenario")
		return
	}

	logger.Info("Scenario deleted", slog.String("scenario_id", scenarioID))
	c.Status(http.StatusNoContent)
}

// upsertRecurringOverride godoc
// @Summary Create or update a recurring override
// @Description Applies a partial recurring item within the scenario. op=replace merges mutable fields into the target; op=add synthesizes a scenario-only item.
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   id path string true "Scenario ID"
// @Param   override body dto.UpsertRecurringOverrideRequest true "Override details"
// @Success 200 {object} dto.OverrideResponse
// @Failure 400 {object} map[string]string "Invalid input format, validation error or unknown target"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 409 {object} map[string]string "Target already has a replace override"
// @Failure 500 {object} map[string]string "Failed to save override"
// @Router /scenarios/{id}/overrides/recurring [post]
func (h *scenarioHandler) upsertRecurringOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scenarioID := c.Param("id")

	var req dto.UpsertRecurringOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRecurringOverride", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	override, err := h.scenarioService.UpsertRecurringOverride(c.Request.Context(), scenarioID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save override")
		return
	}

	logger.Info("Recurring override saved",
		slog.String("scenario_id", scenarioID),
		slog.String("override_id", override.OverrideID),
	)
	c.JSON(http.StatusOK, dto.OverrideResponse{
		OverrideID: override.OverrideID,
		ScenarioID: override.ScenarioID,
		Op:         override.Op,
		TargetID:   override.TargetID,
	})
}

// upsertSingleOverride godoc
// @Summary Create or update a single-item override
// @Description Applies a partial one-off item within the scenario. op=replace merges mutable fields into the target; op=add synthesizes a scenario-only item.
// @Tags scenarios
// @Accept  json
// @Produce  json
// @Param   id path string true "Scenario ID"
// @Param   override body dto.UpsertSingleOverrideRequest true "Override details"
// @Success 200 {object} dto.OverrideResponse
// @Failure 400 {object} map[string]string "Invalid input format, validation error or unknown target"
// @Failure 404 {object} map[string]string "Scenario not found"
// @Failure 409 {object} map[string]string "Target already has a replace override"
// @Failure 500 {object} map[string]string "Failed to save override"
// @Router /scenarios/{id}/overrides/single [post]
func (h *scenarioHandler) upsertSingleOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scenarioID := c.Param("id")

	var req dto.UpsertSingleOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertSingleOverride", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	override, err := h.scenarioService.UpsertSingleOverride(c.Request.Context(), scenarioID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save override")
		return
	}

	logger.Info("Single override saved",
		slog.String("scenario_id", scenarioID),
		slog.String("override_id", override.OverrideID),
	)
	c.JSON(http.StatusOK, dto.OverrideResponse{
		OverrideID: override.OverrideID,
		ScenarioID: override.ScenarioID,
		Op:         override.Op,
		TargetID:   override.TargetID,
	})
}

// deleteRecurringOverride godoc
// @Summary Delete a recurring override
// @Tags scenarios
// @Produce  json
// @Param   id path string true "Scenario ID"
// @Param   overrideID path string true "Override ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Override not found"
// @Failure 500 {object} map[string]string "Failed to delete override"
// @Router /scenarios/{id}/overrides/recurring/{overrideID} [delete]
func (h *scenarioHandler) deleteRecurringOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	overrideID := c.Param("overrideID")

	if err := h.scenarioService.DeleteRecurringOverride(c.Request.Context(), overrideID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete override")
		return
	}

	logger.Info("Recurring override deleted", slog.String("override_id", overrideID))
	c.Status(http.StatusNoContent)
}

// deleteSingleOverride godoc
// @Summary Delete a single-item override
// @Tags scenarios
// @Produce  json
// @Param   id path string true "Scenario ID"
// @Param   overrideID path string true "Override ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Override not found"
// @Failure 500 {object} map[string]string "Failed to delete override"
// @Router /scenarios/{id}/overrides/single/{overrideID} [delete]
func (h *scenarioHandler) deleteSingleOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	overrideID := c.Param("overrideID")

	if err := h.scenarioService.DeleteSingleOverride(c.Request.Context(), overrideID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete override")
		return
	}

	logger.Info("Single override deleted", slog.String("override_id", overrideID))
	c.Status(http.StatusNoContent)
}
