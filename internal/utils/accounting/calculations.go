package accounting

import (
	"fmt"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateEntryLines checks the double-entry invariants for a set of journal
// lines before anything is persisted: at least two lines, each line carrying
// exactly one positive side, and debit/credit totals equal within the
// balance tolerance.
func ValidateEntryLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit must be non-negative", i)
		}
		hasDebit := l.Debit.IsPositive()
		hasCredit := l.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("line %d: exactly one of debit or credit must be set", i)
		}
		if l.AccountCode == "" {
			return fmt.Errorf("line %d: account code is required", i)
		}
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(domain.BalanceTolerance) {
		return fmt.Errorf("entry does not balance: debits %s, credits %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}

// AccumulateRunning fills in the running balance over statement rows ordered
// by document number, accumulating debit minus credit.
func AccumulateRunning(rows []domain.StatementRow) []domain.StatementRow {
	balance := decimal.Zero
	for i := range rows {
		balance = balance.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].RunningBalance = balance
	}
	return rows
}
