package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoginRequest authenticates by phone and password.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest registers a new member or employee.
type CreateUserRequest struct {
	Name                string                                     `json:"name" binding:"required"`
	Phone               string                                     `json:"phone" binding:"required"`
	Password            string                                     `json:"password" binding:"required,min=8"`
	Roles               []domain.Role                              `json:"roles" binding:"required,min=1,dive,oneof=ADMIN STAFF TRAINER CLIENT"`
	BaseSalary          decimal.Decimal                            `json:"baseSalary"`
	CommissionOverrides map[domain.ServiceCategory]decimal.Decimal `json:"commissionOverrides,omitempty"`
}

// UpdateUserRequest partially updates a user.
type UpdateUserRequest struct {
	Name                *string                                    `json:"name,omitempty"`
	Phone               *string                                    `json:"phone,omitempty"`
	Password            *string                                    `json:"password,omitempty" binding:"omitempty,min=8"`
	Roles               []domain.Role                              `json:"roles,omitempty" binding:"omitempty,min=1,dive,oneof=ADMIN STAFF TRAINER CLIENT"`
	BaseSalary          *decimal.Decimal                           `json:"baseSalary,omitempty"`
	CommissionOverrides map[domain.ServiceCategory]decimal.Decimal `json:"commissionOverrides,omitempty"`
	IsActive            *bool                                      `json:"isActive,omitempty"`
}

// UserResponse mirrors domain.User without the password hash.
type UserResponse struct {
	UserID     string          `json:"userID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Roles      []domain.Role   `json:"roles"`
	Balance    decimal.Decimal `json:"balance"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain user.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Phone:      u.Phone,
		Roles:      u.Roles,
		Balance:    u.Balance,
		BaseSalary: u.BaseSalary,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(u)
	}
	return res
}
