package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/utils/export"
	"github.com/SscSPs/finops_backoffice/internal/utils/pagination"
)

const dateLayout = "2006-01-02"

// TransactionService lists and exports the transactions ledger.
type TransactionService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionReader, authorizer portssvc.AccessAuthorizerSvc) *TransactionService {
	return &TransactionService{
		BaseService: BaseService{Authorizer: authorizer},
		txnRepo:     txnRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

type txnFilter struct {
	source    string
	txnType   domain.TransactionType
	direction domain.Direction
	from      *time.Time
	to        *time.Time // exclusive
	query     string
}

func parseTxnFilter(params dto.ListTransactionsParams) (txnFilter, error) {
	f := txnFilter{
		source:    strings.TrimSpace(params.Source),
		txnType:   domain.TransactionType(params.Type),
		direction: domain.Direction(params.Direction),
		query:     strings.ToLower(strings.TrimSpace(params.Query)),
	}
	if params.From != "" {
		from, err := time.Parse(dateLayout, params.From)
		if err != nil {
			return f, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, params.From)
		}
		f.from = &from
	}
	if params.To != "" {
		to, err := time.Parse(dateLayout, params.To)
		if err != nil {
			return f, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, params.To)
		}
		to = to.AddDate(0, 0, 1)
		f.to = &to
	}
	if f.from != nil && f.to != nil && !f.from.Before(*f.to) {
		return f, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}
	return f, nil
}

func (f txnFilter) matches(t domain.Transaction) bool {
	if f.source != "" && !strings.EqualFold(t.Source, f.source) {
		return false
	}
	if f.txnType != "" && t.TransactionType != f.txnType {
		return false
	}
	if f.direction != "" && t.Direction != f.direction {
		return false
	}
	if f.from != nil && t.Date.Before(*f.from) {
		return false
	}
	if f.to != nil && !t.Date.Before(*f.to) {
		return false
	}
	if f.query == "" {
		return true
	}
	for _, field := range []string{t.OrderNumber, t.OrderName, t.BillingCo, t.BillTo, t.RefCo, t.Referrer, t.SalesRep, t.Source} {
		if strings.Contains(strings.ToLower(field), f.query) {
			return true
		}
	}
	return false
}

func sortTransactions(txns []domain.Transaction, sortBy string, asc bool) {
	slices.SortStableFunc(txns, func(a, b domain.Transaction) int {
		var c int
		switch sortBy {
		case "total":
			c = a.Total.Cmp(b.Total)
		case "orderNumber":
			c = strings.Compare(a.OrderNumber, b.OrderNumber)
		default:
			c = a.Date.Compare(b.Date)
		}
		if !asc {
			c = -c
		}
		return c
	})
}

// filtered loads, filters and sorts the ledger for params.
func (s *TransactionService) filtered(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	f, err := parseTxnFilter(params)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	sortTransactions(out, params.SortBy, params.SortDir == "asc")
	return out, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermAccessTransactions); err != nil {
		return nil, err
	}
	txns, err := s.filtered(ctx, params)
	if err != nil {
		return nil, err
	}
	page, next, err := pagination.Page(txns, params.NextToken, params.Limit, func(t domain.Transaction) string {
		return t.TransactionID
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToLedgerTransactionResponses(page),
		NextToken:    next,
	}, nil
}

func (s *TransactionService) ExportCSV(ctx context.Context, userID string, params dto.ListTransactionsParams, now time.Time) (string, []byte, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermExportTransactions); err != nil {
		return "", nil, err
	}
	txns, err := s.filtered(ctx, params)
	if err != nil {
		return "", nil, err
	}
	s.LogInfo(ctx, "Transactions exported", slog.String("format", "csv"), slog.Int("rows", len(txns)))
	return export.CSVFileName(now), []byte(export.TransactionsCSV(txns)), nil
}

func (s *TransactionService) ExportXLSX(ctx context.Context, userID string, params dto.ListTransactionsParams, now time.Time) (string, []byte, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.PermExportTransactions); err != nil {
		return "", nil, err
	}
	txns, err := s.filtered(ctx, params)
	if err != nil {
		return "", nil, err
	}
	data, err := export.TransactionsXLSX(txns)
	if err != nil {
		s.LogError(ctx, err, "Failed to build workbook")
		return "", nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	s.LogInfo(ctx, "Transactions exported", slog.String("format", "xlsx"), slog.Int("rows", len(txns)))
	return export.XLSXFileName(now), data, nil
}
