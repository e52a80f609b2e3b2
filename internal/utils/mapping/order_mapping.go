package mapping

import (
	"database/sql"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	var due sql.NullTime
	if d.DueDate != nil {
		due = sql.NullTime{Time: *d.DueDate, Valid: true}
	}
	return models.Order{
		OrderID:         d.OrderID,
		OrderNumber:     d.OrderNumber,
		Name:            d.Name,
		Module:          string(d.Module),
		BillTo:          d.BillTo,
		BillingCompany:  d.BillingCompany,
		Status:          d.Status,
		SecondaryStatus: d.SecondaryStatus,
		OrderDate:       d.OrderDate,
		DueDate:         due,
		Amount:          d.Amount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	o := domain.Order{
		OrderID:         m.OrderID,
		OrderNumber:     m.OrderNumber,
		Name:            m.Name,
		Module:          domain.Module(m.Module),
		BillTo:          m.BillTo,
		BillingCompany:  m.BillingCompany,
		Status:          m.Status,
		SecondaryStatus: m.SecondaryStatus,
		OrderDate:       m.OrderDate,
		Amount:          m.Amount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.DueDate.Valid {
		t := m.DueDate.Time
		o.DueDate = &t
	}
	return o
}

// ToDomainOrderSlice converts a slice of model Orders to a slice of domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID: d.LineItemID,
		OrderID:    d.OrderID,
		Category:   d.Category,
		Delta:      d.Delta,
		Cleared:    d.Cleared,
		Saved:      d.Saved,
		Invoiced:   d.Invoiced,
		OccurredAt: d.OccurredAt,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID: m.LineItemID,
		OrderID:    m.OrderID,
		Category:   m.Category,
		Delta:      m.Delta,
		Cleared:    m.Cleared,
		Saved:      m.Saved,
		Invoiced:   m.Invoiced,
		OccurredAt: m.OccurredAt,
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to a slice of domain LineItems
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}

// ToModelServiceLine converts a domain ServiceLine to a model ServiceLine
func ToModelServiceLine(d domain.ServiceLine) models.ServiceLine {
	return models.ServiceLine{
		ServiceLineID: d.ServiceLineID,
		OrderID:       d.OrderID,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitAmount:    d.UnitAmount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainServiceLine converts a model ServiceLine to a domain ServiceLine
func ToDomainServiceLine(m models.ServiceLine) domain.ServiceLine {
	return domain.ServiceLine{
		ServiceLineID: m.ServiceLineID,
		OrderID:       m.OrderID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitAmount:    m.UnitAmount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
