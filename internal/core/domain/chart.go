package domain

// Well-known account codes the money-moving operations post against.
// Collaborators depend on these exact codes being present after seeding.
const (
	AccountCashOnHand         = "1011"
	AccountBank               = "1012"
	AccountTradeReceivables   = "1021"
	AccountChecksReceivable   = "1031"
	AccountFoodInventory      = "1041"
	AccountMedicalInventory   = "1042"
	AccountSupplyInventory    = "1043"
	AccountTradePayables      = "2011"
	AccountChecksPayable      = "2021"
	AccountWalletLiability    = "2031"
	AccountTrainingRevenue    = "4010"
	AccountBoardingRevenue    = "4020"
	AccountMedicalRevenue     = "4030"
	AccountGroomingRevenue    = "4040"
	AccountGoodsRevenue       = "4050"
	AccountSalaryExpense      = "6010"
	AccountCommissionExpense  = "6011"
	AccountRentExpense        = "6020"
	AccountFeedingExpense     = "6030"
	AccountTreatmentExpense   = "6031"
	AccountMaintenanceExpense = "6040"
	AccountAdvertisingExpense = "6050"
	AccountSuppliesExpense    = "6060"
)

// DefaultChart returns the chart of accounts seeded at first run.
func DefaultChart() []Account {
	mk := func(code, name string, t AccountType, parent string) Account {
		return Account{Code: code, Name: name, AccountType: t, ParentCode: parent, IsActive: true}
	}
	return []Account{
		mk("10", "Current Assets", Asset, ""),
		mk("1010", "Cash and Bank", Asset, "10"),
		mk(AccountCashOnHand, "Main Cash Register", Asset, "1010"),
		mk(AccountBank, "Bank Account", Asset, "1010"),
		mk("1020", "Accounts Receivable", Asset, "10"),
		mk(AccountTradeReceivables, "Trade Receivables (Members)", Asset, "1020"),
		mk("1030", "Notes Receivable", Asset, "10"),
		mk(AccountChecksReceivable, "Checks Receivable", Asset, "1030"),
		mk("1040", "Inventory", Asset, "10"),
		mk(AccountFoodInventory, "Food Stock", Asset, "1040"),
		mk(AccountMedicalInventory, "Medical Stock", Asset, "1040"),
		mk(AccountSupplyInventory, "Equipment and Supplies Stock", Asset, "1040"),

		mk("20", "Current Liabilities", Liability, ""),
		mk("2010", "Accounts Payable", Liability, "20"),
		mk(AccountTradePayables, "Trade Payables (Suppliers)", Liability, "2010"),
		mk("2020", "Notes Payable", Liability, "20"),
		mk(AccountChecksPayable, "Checks Payable", Liability, "2020"),
		mk("2030", "Advances Received", Liability, "20"),
		mk(AccountWalletLiability, "Member Wallets (Owed to Members)", Liability, "2030"),
		mk("2040", "Salaries Payable", Liability, "20"),

		mk("30", "Owner Equity", Equity, ""),
		mk("3010", "Initial Capital", Equity, "30"),
		mk("3020", "Retained Earnings", Equity, "30"),

		mk("40", "Operating Revenue", Revenue, ""),
		mk(AccountTrainingRevenue, "Training Revenue", Revenue, "40"),
		mk(AccountBoardingRevenue, "Boarding Revenue", Revenue, "40"),
		mk(AccountMedicalRevenue, "Medical Services Revenue", Revenue, "40"),
		mk(AccountGroomingRevenue, "Grooming Revenue", Revenue, "40"),
		mk(AccountGoodsRevenue, "Goods and Food Sales", Revenue, "40"),

		mk("60", "Operating Expenses", Expense, ""),
		mk(AccountSalaryExpense, "Salaries and Wages", Expense, "60"),
		mk(AccountCommissionExpense, "Trainer Commissions", Expense, "60"),
		mk(AccountRentExpense, "Rent", Expense, "60"),
		mk(AccountFeedingExpense, "Animal Feeding (COGS)", Expense, "60"),
		mk(AccountTreatmentExpense, "Medication and Treatment (COGS)", Expense, "60"),
		mk(AccountMaintenanceExpense, "Repairs and Maintenance", Expense, "60"),
		mk(AccountAdvertisingExpense, "Advertising", Expense, "60"),
		mk(AccountSuppliesExpense, "Consumable Supplies", Expense, "60"),
	}
}

// RevenueAccountForCategory maps a service category to its revenue account.
func RevenueAccountForCategory(category ServiceCategory) string {
	switch category {
	case ServiceTraining:
		return AccountTrainingRevenue
	case ServiceBoarding:
		return AccountBoardingRevenue
	case ServiceMedical:
		return AccountMedicalRevenue
	case ServiceGrooming:
		return AccountGroomingRevenue
	default:
		return AccountGoodsRevenue
	}
}

// ExpenseAccountForCategory maps a free-form expense category to its account.
// Unrecognized categories fall through to consumable supplies.
func ExpenseAccountForCategory(category string) string {
	switch category {
	case "Salary":
		return AccountSalaryExpense
	case "Rent":
		return AccountRentExpense
	case "Feeding":
		return AccountFeedingExpense
	case "Repairs":
		return AccountMaintenanceExpense
	case "Advertising":
		return AccountAdvertisingExpense
	default:
		return AccountSuppliesExpense
	}
}
