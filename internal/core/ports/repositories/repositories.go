package repositories

// RepositoryProvider bundles every repository for service wiring.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	JournalRepo   JournalRepository
	UserRepo      UserRepository
	WalletRepo    WalletRepository
	InvoiceRepo   InvoiceRepository
	ExpenseRepo   ExpenseRepository
	InventoryRepo InventoryRepository
	CheckRepo     CheckRepository
	PayslipRepo   PayslipRepository
	SnapshotRepo  SnapshotRepository
}
