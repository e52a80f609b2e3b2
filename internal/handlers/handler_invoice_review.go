package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceReviewHandler serves the invoice review queue and its staged-action workflow.
type invoiceReviewHandler struct {
	reviewService portssvc.InvoiceReviewSvcFacade
}

func newInvoiceReviewHandler(rs portssvc.InvoiceReviewSvcFacade) *invoiceReviewHandler {
	return &invoiceReviewHandler{reviewService: rs}
}

// registerInvoiceReviewRoutes registers the review routes. submit, apply and
// delete carry their own permission checks in the service.
func registerInvoiceReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.InvoiceReviewSvcFacade) {
	h := newInvoiceReviewHandler(reviewService)

	review := rg.Group("/invoice-review")
	{
		review.GET("/orders", h.listOrders)
		review.GET("/orders/:order_id", h.getReview)
		review.DELETE("/orders/:order_id", h.removeOrder)
		review.PUT("/orders/:order_id/staged/:line_item_id", h.stageAction)
		review.DELETE("/orders/:order_id/staged/:line_item_id", h.unstageAction)
		review.POST("/orders/:order_id/submit", h.submitStaged)
		review.POST("/orders/:order_id/apply", h.applyActions)
		review.GET("/triggers", h.getTriggers)
		review.PUT("/triggers", h.setTrigger)
	}
}

// listOrders godoc
// @Summary List the invoice review queue
// @Description Lists invoice review orders with their active item count and net delta under the caller's triggers
// @Tags invoice-review
// @Produce json
// @Success 200 {array} dto.ReviewQueueEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders [get]
func (h *invoiceReviewHandler) listOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.reviewService.ListReviewOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list review orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToReviewQueueResponse(entries))
}

// getReview godoc
// @Summary Review one order
// @Description Selects the order for the caller and returns its active items grouped by category, saved and invoiced items and the staged actions
// @Tags invoice-review
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} dto.OrderReviewResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders/{order_id} [get]
func (h *invoiceReviewHandler) getReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	review, err := h.reviewService.GetReview(c.Request.Context(), userID, c.Param("order_id"))
	if err != nil {
		respondError(c, err, "Failed to load review")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderReviewResponse(review))
}

// removeOrder godoc
// @Summary Remove a review order
// @Description Deletes the order and all of its line items
// @Tags invoice-review
// @Param order_id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders/{order_id} [delete]
func (h *invoiceReviewHandler) removeOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("order_id")
	if err := h.reviewService.RemoveOrder(c.Request.Context(), userID, orderID); err != nil {
		respondError(c, err, "Failed to remove order")
		return
	}
	logger.Info("Review order removed", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}

// stageAction godoc
// @Summary Stage an action for a line item
// @Description Records invoice, save, dismiss or restore as the pending action of a line item
// @Tags invoice-review
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param line_item_id path string true "Line item ID"
// @Param action body dto.StageActionRequest true "Action"
// @Success 200 {object} dto.StagedActionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders/{order_id}/staged/{line_item_id} [put]
func (h *invoiceReviewHandler) stageAction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.StageActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	action, err := domain.ParseStagedAction(req.Action)
	if err != nil {
		respondError(c, err, "Invalid action")
		return
	}

	orderID := c.Param("order_id")
	staged, err := h.reviewService.StageAction(c.Request.Context(), userID, orderID, c.Param("line_item_id"), action)
	if err != nil {
		respondError(c, err, "Failed to stage action")
		return
	}
	c.JSON(http.StatusOK, dto.StagedActionsResponse{OrderID: orderID, Staged: staged, Count: len(staged)})
}

// unstageAction godoc
// @Summary Drop a staged action
// @Tags invoice-review
// @Produce json
// @Param order_id path string true "Order ID"
// @Param line_item_id path string true "Line item ID"
// @Success 200 {object} dto.StagedActionsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders/{order_id}/staged/{line_item_id} [delete]
func (h *invoiceReviewHandler) unstageAction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("order_id")
	staged, err := h.reviewService.UnstageAction(c.Request.Context(), userID, orderID, c.Param("line_item_id"))
	if err != nil {
		respondError(c, err, "Failed to unstage action")
		return
	}
	c.JSON(http.StatusOK, dto.StagedActionsResponse{OrderID: orderID, Staged: staged, Count: len(staged)})
}

// submitStaged godoc
// @Summary Submit staged actions
// @Description Resolves the caller's staged actions for the order in one step and clears them
// @Tags invoice-review
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} dto.SubmitResultResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders/{order_id}/submit [post]
func (h *invoiceReviewHandler) submitStaged(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.reviewService.SubmitStaged(c.Request.Context(), userID, c.Param("order_id"))
	if err != nil {
		respondError(c, err, "Failed to submit staged actions")
		return
	}
	logger.Info("Staged actions submitted", slog.String("order_id", result.OrderID), slog.Int("submitted", result.Submitted))
	c.JSON(http.StatusOK, dto.ToSubmitResultResponse(result))
}

// applyActions godoc
// @Summary Apply an action mapping
// @Description Resolves an explicit line item to action mapping in one call
// @Tags invoice-review
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param actions body dto.ApplyActionsRequest true "Line item actions"
// @Success 200 {object} dto.SubmitResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/orders/{order_id}/apply [post]
func (h *invoiceReviewHandler) applyActions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ApplyActionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actions, err := dto.ParseStagedActions(req.Actions)
	if err != nil {
		respondError(c, err, "Invalid actions")
		return
	}

	result, err := h.reviewService.ApplyActions(c.Request.Context(), userID, c.Param("order_id"), actions)
	if err != nil {
		respondError(c, err, "Failed to apply actions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmitResultResponse(result))
}

// getTriggers godoc
// @Summary List review triggers
// @Tags invoice-review
// @Produce json
// @Success 200 {array} dto.TriggerStateResponse
// @Security BearerAuth
// @Router /invoice-review/triggers [get]
func (h *invoiceReviewHandler) getTriggers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter, err := h.reviewService.TriggerFilter(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load triggers")
		return
	}
	c.JSON(http.StatusOK, dto.ToTriggerStateResponses(filter))
}

// setTrigger godoc
// @Summary Toggle a review trigger
// @Tags invoice-review
// @Accept json
// @Produce json
// @Param trigger body dto.SetTriggerRequest true "Trigger toggle"
// @Success 200 {array} dto.TriggerStateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoice-review/triggers [put]
func (h *invoiceReviewHandler) setTrigger(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SetTriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	trigger, err := domain.ParseTrigger(req.Trigger)
	if err != nil {
		respondError(c, err, "Invalid trigger")
		return
	}

	filter, err := h.reviewService.SetTriggerEnabled(c.Request.Context(), userID, trigger, *req.Enabled)
	if err != nil {
		respondError(c, err, "Failed to update trigger")
		return
	}
	c.JSON(http.StatusOK, dto.ToTriggerStateResponses(filter))
}
