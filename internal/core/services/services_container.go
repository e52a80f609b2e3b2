package services

import (
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// sessions is created once by the caller and shared by every service that reads view state.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sessions portssvc.SessionSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Session: sessions}

	// Access service first since every other service authorizes through it
	access := NewAccessService(repos.AccessRepo)
	container.Access = access

	container.InvoiceReview = NewInvoiceReviewService(
		repos.OrderRepo,
		sessions,
		WithInvoiceReviewAuthorizer(access),
	)
	container.Orders = NewOrderService(repos.OrderRepo, repos.TransactionRepo, sessions, access)
	container.ServiceCases = NewServiceCaseService(repos.OrderRepo, access)
	container.Transactions = NewTransactionService(repos.TransactionRepo, access)
	container.Tokens = NewTokenService(cfg, access)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SessionSvc             = (*SessionStore)(nil)
	_ portssvc.AccessSvcFacade        = (*AccessService)(nil)
	_ portssvc.InvoiceReviewSvcFacade = (*InvoiceReviewService)(nil)
	_ portssvc.OrderReaderSvc         = (*OrderService)(nil)
	_ portssvc.ServiceCaseSvc         = (*ServiceCaseService)(nil)
	_ portssvc.TransactionSvcFacade   = (*TransactionService)(nil)
	_ portssvc.TokenSvc               = (*TokenService)(nil)
)
