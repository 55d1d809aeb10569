package domain

import "time"

// SnapshotVersion identifies the snapshot document format.
const SnapshotVersion = "1.0.0"

// SnapshotMetadata describes who exported the snapshot and when.
type SnapshotMetadata struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	ExportedBy string    `json:"exportedBy"`
}

// SnapshotData holds every entity collection in one document. Restore
// replaces state wholesale; partial or merge restore is not supported.
type SnapshotData struct {
	Users                 []User                 `json:"users"`
	Accounts              []Account              `json:"accounts"`
	JournalEntries        []JournalEntry         `json:"journalEntries"`
	WalletTransactions    []WalletTransaction    `json:"walletTransactions"`
	InventoryItems        []InventoryItem        `json:"inventoryItems"`
	InventoryTransactions []InventoryTransaction `json:"inventoryTransactions"`
	Invoices              []Invoice              `json:"invoices"`
	Expenses              []ExpenseRecord        `json:"expenses"`
	Checks                []Check                `json:"checks"`
	Payslips              []Payslip              `json:"payslips"`
}

// Snapshot is the full backup document.
type Snapshot struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Data     SnapshotData     `json:"data"`
}
