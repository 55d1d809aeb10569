package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// BalanceTolerance is the maximum permitted difference between the debit and
// credit totals of an entry, in currency units.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is a single balanced financial event. The document number is
// gapless and monotonic per ledger instance; it is allocated by the
// repository atomically with the insert.
type JournalEntry struct {
	EntryID         string        `json:"entryID"`
	DocumentNumber  int64         `json:"documentNumber"`
	EntryDate       time.Time     `json:"entryDate"`
	Description     string        `json:"description"`
	Reference       string        `json:"reference"`       // e.g. invoice or check number
	RelatedEntityID string        `json:"relatedEntityID"` // e.g. member or animal ID
	Status          EntryStatus   `json:"status"`
	Lines           []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is a single debit or credit against one account. Exactly one of
// Debit/Credit is nonzero in normal use.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// TotalDebits sums the debit side of the entry.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// TotalCredits sums the credit side of the entry.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.Lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// SignedAmount is the line's contribution to the account's derived balance,
// accumulated as debit minus credit.
func (l JournalLine) SignedAmount() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// DebitLine builds a debit line against the given account.
func DebitLine(accountCode string, amount decimal.Decimal, memo string) JournalLine {
	return JournalLine{AccountCode: accountCode, Debit: amount, Credit: decimal.Zero, Memo: memo}
}

// CreditLine builds a credit line against the given account.
func CreditLine(accountCode string, amount decimal.Decimal, memo string) JournalLine {
	return JournalLine{AccountCode: accountCode, Debit: decimal.Zero, Credit: amount, Memo: memo}
}
