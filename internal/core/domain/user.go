package domain

import "github.com/shopspring/decimal"

// Role is a coarse authorization role. Only ADMIN gates engine behavior
// (privileged journal deletion, manual wallet adjustment, restore).
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleTrainer Role = "TRAINER"
	RoleClient  Role = "CLIENT"
)

// User is a club member or employee. Balance is the denormalized wallet
// projection of the member-wallet liability account restricted to this user;
// the WalletTransaction log is the per-user ground truth.
type User struct {
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	PasswordHash string          `json:"-"`
	Roles        []Role          `json:"roles"`
	Balance      decimal.Decimal `json:"balance"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
	// CommissionOverrides maps a service category to a commission percent
	// that beats the invoice's default when this user is the provider.
	CommissionOverrides map[ServiceCategory]decimal.Decimal `json:"commissionOverrides,omitempty"`
	IsActive            bool                                `json:"isActive"`
	AuditFields
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CommissionPercentFor resolves the effective commission percent for a
// service category, preferring the user's category override.
func (u *User) CommissionPercentFor(category ServiceCategory, defaultPercent decimal.Decimal) decimal.Decimal {
	if pct, ok := u.CommissionOverrides[category]; ok {
		return pct
	}
	return defaultPercent
}
