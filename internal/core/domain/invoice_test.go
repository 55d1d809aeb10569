package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clubops/clubledger/internal/core/domain"
)

func TestPaymentMethod_DebitAccount(t *testing.T) {
	tests := []struct {
		method domain.PaymentMethod
		want   string
	}{
		{domain.PayCash, domain.AccountCashOnHand},
		{domain.PayCard, domain.AccountBank},
		{domain.PayOnline, domain.AccountBank},
		{domain.PayWallet, domain.AccountWalletLiability},
		{domain.PayCheck, domain.AccountCashOnHand},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.DebitAccount())
		})
	}
}

func TestInvoice_IsSettled(t *testing.T) {
	tolerance := decimal.NewFromInt(100)
	tests := []struct {
		name string
		paid int64
		want bool
	}{
		{"unpaid", 0, false},
		{"partial below tolerance", 800, false},
		{"within tolerance", 950, true},
		{"exact", 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice := domain.Invoice{
				FinalAmount: decimal.NewFromInt(1000),
				PaidAmount:  decimal.NewFromInt(tt.paid),
			}
			assert.Equal(t, tt.want, invoice.IsSettled(tolerance))
		})
	}
}

func TestInvoice_Remaining(t *testing.T) {
	invoice := domain.Invoice{
		FinalAmount: decimal.NewFromInt(1000),
		PaidAmount:  decimal.NewFromInt(350),
	}
	assert.True(t, invoice.Remaining().Equal(decimal.NewFromInt(650)))
}

func TestUser_CommissionPercentFor(t *testing.T) {
	defaultPct := decimal.NewFromInt(10)
	trainer := domain.User{
		CommissionOverrides: map[domain.ServiceCategory]decimal.Decimal{
			domain.ServiceTraining: decimal.NewFromInt(20),
		},
	}

	assert.True(t, trainer.CommissionPercentFor(domain.ServiceTraining, defaultPct).Equal(decimal.NewFromInt(20)))
	assert.True(t, trainer.CommissionPercentFor(domain.ServiceGrooming, defaultPct).Equal(defaultPct))

	var noOverrides domain.User
	assert.True(t, noOverrides.CommissionPercentFor(domain.ServiceTraining, defaultPct).Equal(defaultPct))
}
