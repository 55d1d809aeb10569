package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(pool),
		JournalRepo:   newPgxJournalRepository(pool),
		UserRepo:      newPgxUserRepository(pool),
		WalletRepo:    newPgxWalletRepository(pool),
		InvoiceRepo:   newPgxInvoiceRepository(pool),
		ExpenseRepo:   newPgxExpenseRepository(pool),
		InventoryRepo: newPgxInventoryRepository(pool),
		CheckRepo:     newPgxCheckRepository(pool),
		PayslipRepo:   newPgxPayslipRepository(pool),
		SnapshotRepo:  newPgxSnapshotRepository(pool),
	}
}
