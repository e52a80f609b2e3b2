package services

import (
	"context"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/dto"
)

// TransactionReaderSvc defines read operations for the transactions module
type TransactionReaderSvc interface {
	// ListTransactions filters, sorts and paginates transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionExportSvc defines export operations for the transactions module
type TransactionExportSvc interface {
	// ExportCSV renders every filtered transaction as CSV; returns file name and content.
	ExportCSV(ctx context.Context, userID string, params dto.ListTransactionsParams, now time.Time) (string, []byte, error)

	// ExportXLSX renders every filtered transaction as a workbook; returns file name and content.
	ExportXLSX(ctx context.Context, userID string, params dto.ListTransactionsParams, now time.Time) (string, []byte, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionExportSvc
}
