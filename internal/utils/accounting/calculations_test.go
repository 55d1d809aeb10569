package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/utils/accounting"
)

func TestValidateEntryLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr bool
	}{
		{
			name: "balanced pair",
			lines: []domain.JournalLine{
				domain.DebitLine("1011", decimal.NewFromInt(500), ""),
				domain.CreditLine("4010", decimal.NewFromInt(500), ""),
			},
		},
		{
			name: "compound entry",
			lines: []domain.JournalLine{
				domain.DebitLine("1011", decimal.NewFromInt(300), ""),
				domain.DebitLine("1012", decimal.NewFromInt(200), ""),
				domain.CreditLine("4010", decimal.NewFromInt(500), ""),
			},
		},
		{
			name: "within tolerance",
			lines: []domain.JournalLine{
				domain.DebitLine("1011", decimal.NewFromFloat(499.995), ""),
				domain.CreditLine("4010", decimal.NewFromInt(500), ""),
			},
		},
		{
			name: "unbalanced",
			lines: []domain.JournalLine{
				domain.DebitLine("1011", decimal.NewFromInt(400), ""),
				domain.CreditLine("4010", decimal.NewFromInt(500), ""),
			},
			wantErr: true,
		},
		{
			name: "single line",
			lines: []domain.JournalLine{
				domain.DebitLine("1011", decimal.NewFromInt(500), ""),
			},
			wantErr: true,
		},
		{
			name: "line with both sides set",
			lines: []domain.JournalLine{
				{AccountCode: "1011", Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(500)},
				domain.CreditLine("4010", decimal.Zero, ""),
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				domain.DebitLine("1011", decimal.NewFromInt(-500), ""),
				domain.CreditLine("4010", decimal.NewFromInt(-500), ""),
			},
			wantErr: true,
		},
		{
			name: "missing account code",
			lines: []domain.JournalLine{
				domain.DebitLine("", decimal.NewFromInt(500), ""),
				domain.CreditLine("4010", decimal.NewFromInt(500), ""),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryLines(tt.lines)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccumulateRunning(t *testing.T) {
	rows := []domain.StatementRow{
		{DocumentNumber: 1001, Debit: decimal.NewFromInt(500)},
		{DocumentNumber: 1002, Credit: decimal.NewFromInt(200)},
		{DocumentNumber: 1003, Debit: decimal.NewFromInt(50)},
	}

	got := accounting.AccumulateRunning(rows)

	assert.True(t, got[0].RunningBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, got[1].RunningBalance.Equal(decimal.NewFromInt(300)))
	assert.True(t, got[2].RunningBalance.Equal(decimal.NewFromInt(350)))
}

func TestAccumulateRunning_Empty(t *testing.T) {
	assert.Empty(t, accounting.AccumulateRunning(nil))
}
