package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/utils"
	"github.com/shopspring/decimal"
)

// ListOrdersParams defines query parameters for a module listing page.
type ListOrdersParams struct {
	Module  string  `form:"module" binding:"required"`
	Query   *string `form:"q"`      // Optional; falls back to the session search query when absent
	Status  string  `form:"status"` // Optional exact (case-insensitive) status match
	SortBy  string  `form:"sortBy,default=orderDate" binding:"omitempty,oneof=orderNumber name billTo orderDate dueDate amount status"`
	SortDir string  `form:"sortDir,default=desc" binding:"omitempty,oneof=asc desc"`
	GroupBy string  `form:"groupBy" binding:"omitempty,oneof=status"`
}

// OrderResponse defines the data returned for an order row.
type OrderResponse struct {
	OrderID         string          `json:"orderID"`
	OrderNumber     string          `json:"orderNumber"`
	Name            string          `json:"name"`
	Module          domain.Module   `json:"module"`
	BillTo          string          `json:"billTo"`
	BillingCompany  string          `json:"billingCompany"`
	Status          string          `json:"status"`
	SecondaryStatus string          `json:"secondaryStatus,omitempty"`
	OrderDate       time.Time       `json:"orderDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	AmountDisplay   string          `json:"amountDisplay"`
}

// OrderGroupResponse is one status group of a grouped listing.
type OrderGroupResponse struct {
	Key    string          `json:"key"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
	Orders []OrderResponse `json:"orders"`
}

// ListOrdersResponse is returned by the module listing endpoint.
// Groups is only populated when grouping was requested.
type ListOrdersResponse struct {
	Module      domain.Module        `json:"module"`
	SearchQuery string               `json:"searchQuery"`
	Total       decimal.Decimal      `json:"total"`
	Orders      []OrderResponse      `json:"orders"`
	Groups      []OrderGroupResponse `json:"groups,omitempty"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:         o.OrderID,
		OrderNumber:     o.OrderNumber,
		Name:            o.Name,
		Module:          o.Module,
		BillTo:          o.BillTo,
		BillingCompany:  o.BillingCompany,
		Status:          o.Status,
		SecondaryStatus: o.SecondaryStatus,
		OrderDate:       o.OrderDate,
		DueDate:         o.DueDate,
		Amount:          o.Amount,
		AmountDisplay:   utils.FormatMoney(o.Amount),
	}
}

// ToListOrderResponse converts a slice of domain.Order to a slice of OrderResponse DTOs
func ToListOrderResponse(orders []domain.Order) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = ToOrderResponse(&orders[i])
	}
	return res
}

// ServiceLineResponse defines the data returned for a service line.
type ServiceLineResponse struct {
	ServiceLineID string          `json:"serviceLineID"`
	OrderID       string          `json:"orderID"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitAmount    decimal.Decimal `json:"unitAmount"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToServiceLineResponse converts a domain.ServiceLine to its DTO.
func ToServiceLineResponse(l domain.ServiceLine) ServiceLineResponse {
	return ServiceLineResponse{
		ServiceLineID: l.ServiceLineID,
		OrderID:       l.OrderID,
		Description:   l.Description,
		Quantity:      l.Quantity,
		UnitAmount:    l.UnitAmount,
		Total:         l.Total(),
		CreatedAt:     l.CreatedAt,
		CreatedBy:     l.CreatedBy,
	}
}

// ToServiceLineResponses converts service lines to their DTOs.
func ToServiceLineResponses(lines []domain.ServiceLine) []ServiceLineResponse {
	res := make([]ServiceLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToServiceLineResponse(l)
	}
	return res
}

// CreateServiceLineRequest defines the data needed to append a service line.
type CreateServiceLineRequest struct {
	Description string          `json:"description" binding:"required,max=200"`
	Quantity    int             `json:"quantity" binding:"min=1,max=10000"`
	UnitAmount  decimal.Decimal `json:"unitAmount" binding:"gte=0.01,lte=1000000"`
}

// Trimmed returns the request with surrounding whitespace removed from its text fields.
func (r CreateServiceLineRequest) Trimmed() CreateServiceLineRequest {
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// CreateOrderCaseRequest defines the data needed to open a new services order.
type CreateOrderCaseRequest struct {
	Name           string                     `json:"name" binding:"required,max=120"`
	BillTo         string                     `json:"billTo" binding:"required,max=120"`
	BillingCompany string                     `json:"billingCompany" binding:"max=120"`
	Lines          []CreateServiceLineRequest `json:"lines" binding:"omitempty,max=50,dive"`
}

// Trimmed returns a copy of the request, lines included, with text fields trimmed.
func (r CreateOrderCaseRequest) Trimmed() CreateOrderCaseRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.BillTo = strings.TrimSpace(r.BillTo)
	r.BillingCompany = strings.TrimSpace(r.BillingCompany)
	if r.Lines != nil {
		lines := make([]CreateServiceLineRequest, len(r.Lines))
		for i, l := range r.Lines {
			lines[i] = l.Trimmed()
		}
		r.Lines = lines
	}
	return r
}

// OrderCaseResponse is returned after creating a services order.
type OrderCaseResponse struct {
	Order OrderResponse         `json:"order"`
	Lines []ServiceLineResponse `json:"lines"`
}

// OrderSummaryParams selects the module whose orders are aggregated.
type OrderSummaryParams struct {
	Module string `form:"module" binding:"required"`
}

// OrderSummaryResponse wraps the per-order billed and collected totals of a module.
type OrderSummaryResponse struct {
	Module    domain.Module         `json:"module"`
	Summaries []domain.OrderSummary `json:"summaries"`
}
