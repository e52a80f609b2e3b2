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

// orderHandler serves the module listing pages (billing, collections, storage, ...).
type orderHandler struct {
	orderService portssvc.OrderReaderSvc
}

func newOrderHandler(os portssvc.OrderReaderSvc) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers the listing routes. Module access is checked per request.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderReaderSvc) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.GET("/summary", h.summaries)
	}
}

// listOrders godoc
// @Summary List a module's orders
// @Description Filters by status and free text (defaults to the session search query), sorts, and optionally groups by status
// @Tags orders
// @Produce json
// @Param module query string true "Module" Enums(billing, collections, commissions, referral_fees, estimates, storage, invoice_review, services)
// @Param q query string false "Free-text search"
// @Param status query string false "Status filter"
// @Param sortBy query string false "Sort key" Enums(orderNumber, name, billTo, orderDate, dueDate, amount, status)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Param groupBy query string false "Grouping" Enums(status)
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind order listing query", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// summaries godoc
// @Summary Summarise billed and collected totals
// @Description Aggregates the transactions ledger per order of the module
// @Tags orders
// @Produce json
// @Param module query string true "Module"
// @Success 200 {object} dto.OrderSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/summary [get]
func (h *orderHandler) summaries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var params dto.OrderSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	module, err := domain.ParseModule(params.Module)
	if err != nil {
		respondError(c, err, "Invalid module")
		return
	}

	summaries, err := h.orderService.Summaries(c.Request.Context(), userID, module)
	if err != nil {
		respondError(c, err, "Failed to summarise orders")
		return
	}
	c.JSON(http.StatusOK, dto.OrderSummaryResponse{Module: module, Summaries: summaries})
}
