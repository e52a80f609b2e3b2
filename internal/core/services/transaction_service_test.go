package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/repositories/memory"
	"github.com/SscSPs/finops_backoffice/internal/utils/export"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	authorizer *MockAuthorizer
	service    *services.TransactionService
	ctx        context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.authorizer = new(MockAuthorizer)
	suite.authorizer.On("Authorize", mock.Anything, "u-readonly", domain.PermExportTransactions).
		Return(apperrors.ErrForbidden).Maybe()
	suite.authorizer.On("Authorize", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.service = services.NewTransactionService(memory.NewSeededStore(), suite.authorizer)
	suite.ctx = context.Background()
}

func defaultTxnParams() dto.ListTransactionsParams {
	return dto.ListTransactionsParams{SortBy: "date", SortDir: "desc", Limit: 50}
}

func txnIDs(resp *dto.ListTransactionsResponse) []string {
	ids := make([]string, len(resp.Transactions))
	for i, t := range resp.Transactions {
		ids[i] = t.TransactionID
	}
	return ids
}

func (suite *TransactionServiceTestSuite) TestList_NewestFirst() {
	resp, err := suite.service.ListTransactions(suite.ctx, "u-finance", defaultTxnParams())

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 10)
	suite.Equal("t-02", resp.Transactions[0].TransactionID)
	suite.Equal("t-08", resp.Transactions[9].TransactionID)
	suite.Nil(resp.NextToken)
}

func (suite *TransactionServiceTestSuite) TestList_Filters() {
	params := defaultTxnParams()
	params.Direction = "outbound"
	resp, err := suite.service.ListTransactions(suite.ctx, "u-finance", params)
	suite.Require().NoError(err)
	suite.Equal([]string{"t-10", "t-04", "t-07", "t-09"}, txnIDs(resp))

	params = defaultTxnParams()
	params.From = "2024-02-01"
	params.To = "2024-02-20"
	resp, err = suite.service.ListTransactions(suite.ctx, "u-finance", params)
	suite.Require().NoError(err)
	suite.Equal([]string{"t-03", "t-07", "t-06", "t-09"}, txnIDs(resp), "the to date is inclusive")

	params = defaultTxnParams()
	params.Query = "tj"
	params.Type = string(domain.TxnReferralFee)
	resp, err = suite.service.ListTransactions(suite.ctx, "u-finance", params)
	suite.Require().NoError(err)
	suite.Equal([]string{"t-09"}, txnIDs(resp))
}

func (suite *TransactionServiceTestSuite) TestList_InvalidDateRange() {
	params := defaultTxnParams()
	params.From = "2024-03-02"
	params.To = "2024-03-01"

	_, err := suite.service.ListTransactions(suite.ctx, "u-finance", params)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestList_Pagination() {
	params := defaultTxnParams()
	params.Limit = 4

	seen := make([]string, 0)
	pages := 0
	for {
		resp, err := suite.service.ListTransactions(suite.ctx, "u-finance", params)
		suite.Require().NoError(err)
		seen = append(seen, txnIDs(resp)...)
		pages++
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}
	suite.Equal(3, pages)
	suite.Len(seen, 10)

	bad := "not-a-token"
	params.NextToken = &bad
	_, err := suite.service.ListTransactions(suite.ctx, "u-finance", params)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestExportCSV() {
	params := defaultTxnParams()
	params.Query = "lakeside"
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	name, data, err := suite.service.ExportCSV(suite.ctx, "u-finance", params, now)

	suite.Require().NoError(err)
	suite.Equal("transactions_2024-03-20.csv", name)
	lines := strings.Split(string(data), "\n")
	suite.Require().Len(lines, 3)
	suite.Equal(strings.Join(export.TransactionColumns, ","), lines[0])
	suite.Contains(lines[1], `"Lakeside Partners, LLC"`)
	suite.True(strings.HasPrefix(lines[1], "Manual,2024-03-01,ORD-10440"))
}

func (suite *TransactionServiceTestSuite) TestExportXLSX() {
	name, data, err := suite.service.ExportXLSX(suite.ctx, "u-finance", defaultTxnParams(), time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal("transactions_2024-03-20.xlsx", name)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	suite.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	suite.Require().NoError(err)
	suite.Len(rows, 11)
}

func (suite *TransactionServiceTestSuite) TestExport_RequiresExportPermission() {
	_, _, err := suite.service.ExportCSV(suite.ctx, "u-readonly", defaultTxnParams(), time.Now())
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, _, err = suite.service.ExportXLSX(suite.ctx, "u-readonly", defaultTxnParams(), time.Now())
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
