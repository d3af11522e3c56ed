package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
	"github.com/mkrv/cashflow_app/internal/dto"
	"github.com/mkrv/cashflow_app/internal/middleware"
)

// itemHandler handles HTTP requests related to single and recurring items.
type itemHandler struct {
	itemService portssvc.ItemSvc
}

// newItemHandler creates a new itemHandler.
func newItemHandler(is portssvc.ItemSvc) *itemHandler {
	return &itemHandler{itemService: is}
}

// registerItemRoutes registers routes related to items.
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvc) {
	h := newItemHandler(itemService)

	items := rg.Group("/items")
	{
		items.POST("/single", h.upsertSingleItem)
		items.GET("/single", h.listSingleItems)
		items.DELETE("/single/:id", h.deleteSingleItem)

		items.POST("/recurring", h.upsertRecurringItem)
		items.GET("/recurring", h.listRecurringItems)
		items.DELETE("/recurring/:id", h.deleteRecurringItem)
	}
}

// upsertSingleItem godoc
// @Summary Create or update a one-off item
// @Description Inserts the item, or updates it in place when the id already exists
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.UpsertSingleItemRequest true "Item details"
// @Success 200 {object} dto.SingleItemResponse
// @Failure 400 {object} map[string]string "Invalid input format, validation error or unknown account"
// @Failure 500 {object} map[string]string "Failed to save item"
// @Router /items/single [post]
func (h *itemHandler) upsertSingleItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertSingleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertSingleItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.itemService.UpsertSingleItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save item")
		return
	}

	logger.Info("Single item saved", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusOK, dto.ToSingleItemResponse(item))
}

// listSingleItems godoc
// @Summary List one-off items
// @Description Retrieves one-off items, optionally filtered by account. Disabled items are included.
// @Tags items
// @Produce  json
// @Param   accountID query string false "Filter by account"
// @Success 200 {array} dto.SingleItemResponse
// @Failure 500 {object} map[string]string "Failed to list items"
// @Router /items/single [get]
func (h *itemHandler) listSingleItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.itemService.ListSingleItems(c.Request.Context(), c.Query("accountID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSingleItemResponse(items))
}

// deleteSingleItem godoc
// @Summary Delete a one-off item
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to delete item"
// @Router /items/single/{id} [delete]
func (h *itemHandler) deleteSingleItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	if err := h.itemService.DeleteSingleItem(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete item")
		return
	}

	logger.Info("Single item deleted", slog.String("item_id", itemID))
	c.Status(http.StatusNoContent)
}

// upsertRecurringItem godoc
// @Summary Create or update a recurring item
// @Description Inserts the item, or updates it in place when the id already exists
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.UpsertRecurringItemRequest true "Item details"
// @Success 200 {object} dto.RecurringItemResponse
// @Failure 400 {object} map[string]string "Invalid input format, validation error or unknown account"
// @Failure 500 {object} map[string]string "Failed to save item"
// @Router /items/recurring [post]
func (h *itemHandler) upsertRecurringItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertRecurringItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRecurringItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.itemService.UpsertRecurringItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save item")
		return
	}

	logger.Info("Recurring item saved", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusOK, dto.ToRecurringItemResponse(item))
}

// listRecurringItems godoc
// @Summary List recurring items
// @Description Retrieves recurring items, optionally filtered by account. Disabled items are included.
// @Tags items
// @Produce  json
// @Param   accountID query string false "Filter by account"
// @Success 200 {array} dto.RecurringItemResponse
// @Failure 500 {object} map[string]string "Failed to list items"
// @Router /items/recurring [get]
func (h *itemHandler) listRecurringItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.itemService.ListRecurringItems(c.Request.Context(), c.Query("accountID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecurringItemResponse(items))
}

// deleteRecurringItem godoc
// @Summary Delete a recurring item
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to delete item"
// @Router /items/recurring/{id} [delete]
func (h *itemHandler) deleteRecurringItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	if err := h.itemService.DeleteRecurringItem(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete item")
		return
	}

	logger.Info("Recurring item deleted", slog.String("item_id", itemID))
	c.Status(http.StatusNoContent)
}
