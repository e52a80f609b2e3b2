package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// serviceCaseHandler serves the Services module editor.
type serviceCaseHandler struct {
	caseService portssvc.ServiceCaseSvc
}

func newServiceCaseHandler(cs portssvc.ServiceCaseSvc) *serviceCaseHandler {
	return &serviceCaseHandler{caseService: cs}
}

func registerServiceCaseRoutes(rg *gin.RouterGroup, caseService portssvc.ServiceCaseSvc) {
	h := newServiceCaseHandler(caseService)

	svc := rg.Group("/services/orders")
	{
		svc.POST("", h.createOrderCase)
		svc.GET("/:order_id/lines", h.listLines)
		svc.POST("/:order_id/lines", h.addLine)
	}
}

// listLines godoc
// @Summary List service lines
// @Tags services
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {array} dto.ServiceLineResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/orders/{order_id}/lines [get]
func (h *serviceCaseHandler) listLines(c *gin.Context) {
	lines, err := h.caseService.ListServiceLines(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondError(c, err, "Failed to list service lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceLineResponses(lines))
}

// addLine godoc
// @Summary Append a service line
// @Description Validates quantity (1-10000) and unit amount (0.01-1000000) and adds the line total to the order
// @Tags services
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param line body dto.CreateServiceLineRequest true "Service line"
// @Success 201 {object} dto.ServiceLineResponse
// @Failure 400 {object} ErrorResponse "Validation errors per field"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/orders/{order_id}/lines [post]
func (h *serviceCaseHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateServiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind service line", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	line, err := h.caseService.AddServiceLine(c.Request.Context(), userID, c.Param("order_id"), req)
	if err != nil {
		respondError(c, err, "Failed to add service line")
		return
	}
	logger.Info("Service line added", slog.String("service_line_id", line.ServiceLineID))
	c.JSON(http.StatusCreated, dto.ToServiceLineResponse(*line))
}

// createOrderCase godoc
// @Summary Open a services order
// @Description Synthesizes a new services order numbered SVC-<n>, optionally with initial lines
// @Tags services
// @Accept json
// @Produce json
// @Param case body dto.CreateOrderCaseRequest true "Order case"
// @Success 201 {object} dto.OrderCaseResponse
// @Failure 400 {object} ErrorResponse "Validation errors per field"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/orders [post]
func (h *serviceCaseHandler) createOrderCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind order case", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	order, lines, err := h.caseService.CreateOrderCase(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create order case")
		return
	}
	c.JSON(http.StatusCreated, dto.OrderCaseResponse{
		Order: dto.ToOrderResponse(order),
		Lines: dto.ToServiceLineResponses(lines),
	})
}
