package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/SscSPs/finops_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const reviewer = "u-finance"

type InvoiceReviewServiceTestSuite struct {
	suite.Suite
	store      *memory.Store
	sessions   *services.SessionStore
	authorizer *MockAuthorizer
	service    *services.InvoiceReviewService
	ctx        context.Context
}

func (suite *InvoiceReviewServiceTestSuite) SetupTest() {
	suite.store = memory.NewSeededStore()
	suite.sessions = services.NewSessionStore()
	suite.authorizer = new(MockAuthorizer)
	suite.authorizer.On("Authorize", mock.Anything, reviewer, mock.Anything).Return(nil).Maybe()
	suite.service = services.NewInvoiceReviewService(suite.store, suite.sessions,
		services.WithInvoiceReviewAuthorizer(suite.authorizer))
	suite.ctx = context.Background()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *InvoiceReviewServiceTestSuite) TestDismissThenSubmit_RecomputesNetDelta() {
	review, err := suite.service.GetReview(suite.ctx, reviewer, "inv-1")
	suite.Require().NoError(err)
	suite.True(dec("40").Equal(review.ActiveNetDelta), "got %s", review.ActiveNetDelta)
	suite.Len(review.Groups, 3)

	staged, err := suite.service.StageAction(suite.ctx, reviewer, "inv-1", "li-1-3", domain.ActionDismiss)
	suite.Require().NoError(err)
	suite.Equal(domain.StagedActions{"li-1-3": domain.ActionDismiss}, staged)

	result, err := suite.service.SubmitStaged(suite.ctx, reviewer, "inv-1")
	suite.Require().NoError(err)
	suite.Equal(1, result.Submitted)
	suite.Equal(1, result.Staged)
	suite.Equal(1, result.Counts[domain.ActionDismiss])

	review, err = suite.service.GetReview(suite.ctx, reviewer, "inv-1")
	suite.Require().NoError(err)
	suite.True(dec("160").Equal(review.ActiveNetDelta), "got %s", review.ActiveNetDelta)
	suite.Empty(review.Staged, "submitting clears the staging area")

	items, err := suite.store.ListLineItemsByOrder(suite.ctx, "inv-1")
	suite.Require().NoError(err)
	suite.True(items[2].Cleared)
}

func (suite *InvoiceReviewServiceTestSuite) TestSelectingAnotherOrderClearsStaging() {
	_, err := suite.service.StageAction(suite.ctx, reviewer, "inv-1", "li-1-1", domain.ActionSave)
	suite.Require().NoError(err)

	review, err := suite.service.GetReview(suite.ctx, reviewer, "inv-2")
	suite.Require().NoError(err)
	suite.Empty(review.Staged)

	// nothing is staged for inv-1 anymore, so submitting it changes nothing
	result, err := suite.service.SubmitStaged(suite.ctx, reviewer, "inv-1")
	suite.Require().NoError(err)
	suite.Equal(0, result.Submitted)
}

func (suite *InvoiceReviewServiceTestSuite) TestStageAction_Rejections() {
	_, err := suite.service.StageAction(suite.ctx, reviewer, "inv-2", "li-2-6", domain.ActionRestore)
	suite.ErrorIs(err, apperrors.ErrValidation, "cleared items cannot be staged")

	_, err = suite.service.StageAction(suite.ctx, reviewer, "inv-2", "li-2-1", domain.ActionRestore)
	suite.ErrorIs(err, apperrors.ErrValidation, "restore needs a saved or invoiced item")

	_, err = suite.service.StageAction(suite.ctx, reviewer, "inv-2", "missing", domain.ActionSave)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.StageAction(suite.ctx, reviewer, "bil-1", "li-1-1", domain.ActionSave)
	suite.ErrorIs(err, apperrors.ErrNotFound, "orders outside invoice review are not visible here")
}

func (suite *InvoiceReviewServiceTestSuite) TestUnstageAction() {
	_, err := suite.service.StageAction(suite.ctx, reviewer, "inv-1", "li-1-1", domain.ActionInvoice)
	suite.Require().NoError(err)
	_, err = suite.service.StageAction(suite.ctx, reviewer, "inv-1", "li-1-2", domain.ActionSave)
	suite.Require().NoError(err)

	staged, err := suite.service.UnstageAction(suite.ctx, reviewer, "inv-1", "li-1-1")
	suite.Require().NoError(err)
	suite.Equal(domain.StagedActions{"li-1-2": domain.ActionSave}, staged)
}

func (suite *InvoiceReviewServiceTestSuite) TestApplyActions_RestoreInvoicedItem() {
	result, err := suite.service.ApplyActions(suite.ctx, reviewer, "inv-2", domain.StagedActions{
		"li-2-5": domain.ActionRestore,
		"li-2-6": domain.ActionInvoice, // cleared, absorbed
		"nope":   domain.ActionSave,    // unknown, ignored
	})
	suite.Require().NoError(err)
	suite.Equal(1, result.Submitted)
	suite.Equal(3, result.Staged)

	review, err := suite.service.GetReview(suite.ctx, reviewer, "inv-2")
	suite.Require().NoError(err)
	suite.Empty(review.Invoiced)
	suite.Len(review.Saved, 1)
	// 1250 - 300 - 640 + 410 restored
	suite.True(dec("720").Equal(review.ActiveNetDelta), "got %s", review.ActiveNetDelta)
}

func (suite *InvoiceReviewServiceTestSuite) TestSubmitStaged_Forbidden() {
	suite.authorizer.On("Authorize", mock.Anything, "u-ops", domain.PermSubmitInvoiceActions).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.SubmitStaged(suite.ctx, "u-ops", "inv-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *InvoiceReviewServiceTestSuite) TestWithoutAuthorizerEverythingIsDenied() {
	svc := services.NewInvoiceReviewService(suite.store, suite.sessions)

	_, err := svc.SubmitStaged(suite.ctx, reviewer, "inv-1")
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *InvoiceReviewServiceTestSuite) TestTriggerFilterChangesQueue() {
	entries, err := suite.service.ListReviewOrders(suite.ctx, reviewer)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(3, entries[0].ActiveCount)

	filter, err := suite.service.SetTriggerEnabled(suite.ctx, reviewer, domain.TriggerPriceChange, false)
	suite.Require().NoError(err)
	suite.False(filter[domain.TriggerPriceChange])

	entries, err = suite.service.ListReviewOrders(suite.ctx, reviewer)
	suite.Require().NoError(err)
	suite.Equal(2, entries[0].ActiveCount)
	suite.True(dec("-200").Equal(entries[0].ActiveNetDelta), "got %s", entries[0].ActiveNetDelta)

	// items outside every known trigger stay visible
	suite.Equal(2, entries[2].ActiveCount)
}

func (suite *InvoiceReviewServiceTestSuite) TestRemoveOrder() {
	_, err := suite.service.GetReview(suite.ctx, reviewer, "inv-3")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.RemoveOrder(suite.ctx, reviewer, "inv-3"))

	_, err = suite.store.FindOrderByID(suite.ctx, "inv-3")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.sessions.Snapshot(reviewer).SelectedOrderID)

	suite.ErrorIs(suite.service.RemoveOrder(suite.ctx, reviewer, "inv-3"), apperrors.ErrNotFound)
}

func TestInvoiceReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceReviewServiceTestSuite))
}

func TestInvoiceReviewService_PersistsFlagChangesWithinABucket(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrderRepository)
	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", mock.Anything, reviewer, domain.PermSubmitInvoiceActions).Return(nil)

	order := &domain.Order{OrderID: "inv-9", Module: domain.ModuleInvoiceReview}
	items := []domain.LineItem{
		{LineItemID: "a", OrderID: "inv-9", Delta: dec("10"), Saved: true, Invoiced: true},
		{LineItemID: "b", OrderID: "inv-9", Delta: dec("5")},
	}
	repo.On("FindOrderByID", mock.Anything, "inv-9").Return(order, nil)
	repo.On("ListLineItemsByOrder", mock.Anything, "inv-9").Return(items, nil)
	repo.On("UpdateLineItemStates", mock.Anything, "inv-9", mock.Anything).Return(nil)

	svc := services.NewInvoiceReviewService(repo, services.NewSessionStore(),
		services.WithInvoiceReviewAuthorizer(authorizer))

	result, err := svc.ApplyActions(ctx, reviewer, "inv-9", domain.StagedActions{"a": domain.ActionInvoice})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.False(t, result.Items[0].Saved)
	assert.True(t, result.Items[0].Invoiced)

	repo.AssertCalled(t, "UpdateLineItemStates", mock.Anything, "inv-9", []domain.LineItem{result.Items[0]})
}

// sessionWithInterleave stages extra actions right after the submit snapshot is taken.
type sessionWithInterleave struct {
	*services.SessionStore
	interleave func()
}

func (s *sessionWithInterleave) Snapshot(userID string) domain.Session {
	snap := s.SessionStore.Snapshot(userID)
	if fn := s.interleave; fn != nil {
		s.interleave = nil
		fn()
	}
	return snap
}

func TestInvoiceReviewService_SubmitKeepsActionsStagedDuringSubmit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()
	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", mock.Anything, reviewer, mock.Anything).Return(nil)
	sessions := &sessionWithInterleave{SessionStore: services.NewSessionStore()}
	svc := services.NewInvoiceReviewService(store, sessions, services.WithInvoiceReviewAuthorizer(authorizer))

	_, err := svc.StageAction(ctx, reviewer, "inv-1", "li-1-3", domain.ActionDismiss)
	require.NoError(t, err)
	sessions.interleave = func() {
		_, err := svc.StageAction(ctx, reviewer, "inv-1", "li-1-2", domain.ActionSave)
		require.NoError(t, err)
	}

	result, err := svc.SubmitStaged(ctx, reviewer, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)

	assert.Equal(t, domain.StagedActions{"li-1-2": domain.ActionSave}, sessions.SessionStore.Snapshot(reviewer).Staged)
}
