package services

import (
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	container.User = NewUserService(repos.UserRepo, container.Token)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.JournalRepo, repos.AccountRepo, repos.InvoiceRepo, repos.ExpenseRepo, repos.UserRepo)

	container.Wallet = NewWalletService(repos.UserRepo, repos.WalletRepo, repos.JournalRepo)
	container.Billing = NewBillingService(repos.InvoiceRepo, repos.ExpenseRepo, repos.UserRepo, repos.WalletRepo, repos.JournalRepo, cfg.InvoiceSettleTolerance)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.JournalRepo)
	container.Check = NewCheckService(repos.CheckRepo, repos.JournalRepo)
	container.Payroll = NewPayrollService(repos.UserRepo, repos.WalletRepo, repos.PayslipRepo, repos.JournalRepo)
	container.Snapshot = NewSnapshotService(repos.SnapshotRepo, cfg.DocumentNumberBase)

	return container
}
