package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User holds the per-user state that is not derivable from other
// entities: the cumulative savings balance.
//
// SavingsBalance is only ever incremented by the weekly settlement job.
type User struct {
	DefaultModel
	SavingsBalance decimal.Decimal `json:"savingsBalance" gorm:"type:DECIMAL(20,8)"`
}

// EnsureUser returns the user with the given ID, creating it if it does
// not exist yet. Identity is resolved by an external collaborator, the
// backend only provisions the row on first sight.
func EnsureUser(db *gorm.DB, id uuid.UUID) (User, error) {
	user := User{DefaultModel: DefaultModel{ID: id}}
	err := db.Where(&User{DefaultModel: DefaultModel{ID: id}}).FirstOrCreate(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}
