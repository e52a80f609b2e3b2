package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// transactionHandler serves the transactions ledger and its exports.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
	now        func() time.Time
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: ts, now: time.Now}
}

func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txnService)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/export.csv", h.exportCSV)
		txns.GET("/export.xlsx", h.exportXLSX)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Filters by source, type, direction, date range and free text; sorted and token-paginated
// @Tags transactions
// @Produce json
// @Param source query string false "Source"
// @Param type query string false "Transaction type"
// @Param direction query string false "Direction"
// @Param from query string false "From date (YYYY-MM-DD, inclusive)"
// @Param to query string false "To date (YYYY-MM-DD, inclusive)"
// @Param q query string false "Free-text search"
// @Param sortBy query string false "Sort key" Enums(date, total, orderNumber)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.txnService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportCSV godoc
// @Summary Export transactions as CSV
// @Description Every filtered transaction, twelve fixed columns, file transactions_<YYYY-MM-DD>.csv
// @Tags transactions
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/export.csv [get]
func (h *transactionHandler) exportCSV(c *gin.Context) {
	h.export(c, csvContentType, h.txnService.ExportCSV)
}

// exportXLSX godoc
// @Summary Export transactions as a workbook
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "XLSX file"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/export.xlsx [get]
func (h *transactionHandler) exportXLSX(c *gin.Context) {
	h.export(c, xlsxContentType, h.txnService.ExportXLSX)
}

// exportFunc renders the filtered transactions and returns the file name and content.
type exportFunc func(ctx context.Context, userID string, params dto.ListTransactionsParams, now time.Time) (string, []byte, error)

func (h *transactionHandler) export(c *gin.Context, contentType string, render exportFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	name, content, err := render(c.Request.Context(), userID, params, h.now())
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}

	logger.Info("Transactions exported", slog.String("file", name), slog.Int("bytes", len(content)))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, content)
}
