package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/types"
)

// Budget is a user's financial plan for one calendar month.
//
// The numbers are planning figures: they steer the daily budget and the
// dashboard, they are not enforced against actual spending.
type Budget struct {
	DefaultModel
	User           User            `json:"-"`
	UserID         uuid.UUID       `json:"userId" gorm:"uniqueIndex:budget_user_month"`
	Month          uint8           `json:"month" gorm:"uniqueIndex:budget_user_month;check:month >= 1 AND month <= 12"`
	Year           uint            `json:"year" gorm:"uniqueIndex:budget_user_month"`
	Salary         decimal.Decimal `json:"salary" gorm:"type:DECIMAL(20,8)"`
	SavingTarget   decimal.Decimal `json:"savingTarget" gorm:"type:DECIMAL(20,8)"`
	SpendingTarget decimal.Decimal `json:"spendingTarget" gorm:"type:DECIMAL(20,8)"`
	WeeklyBudget   decimal.Decimal `json:"weeklyBudget" gorm:"type:DECIMAL(20,8)"`
}

var seven = decimal.NewFromInt(7)

// DailyBudget returns the rounded seventh of the weekly budget.
func (b Budget) DailyBudget() decimal.Decimal {
	return b.WeeklyBudget.Div(seven).Round(0)
}

// BudgetForDay returns the budget covering the month a day falls in.
func BudgetForDay(db *gorm.DB, userID uuid.UUID, day types.Day) (Budget, error) {
	var budget Budget
	err := db.Where(&Budget{
		UserID: userID,
		Month:  uint8(day.Month()),
		Year:   uint(day.Year()),
	}).First(&budget).Error
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// Delete removes the budget together with its weekly budgets and
// allocations. Every allocation is reversed on its wallet first so
// wallets return to their pre-allocation state. All writes commit as
// one unit.
//
// The rows are removed for good, not tombstoned, so the month can be
// budgeted again afterwards.
func (b *Budget) Delete(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var allocations []Allocation
		err := tx.Where(&Allocation{BudgetID: b.ID}).Find(&allocations).Error
		if err != nil {
			return err
		}

		for _, allocation := range allocations {
			var wallet Wallet
			err = tx.First(&wallet, allocation.WalletID).Error
			if err != nil {
				return err
			}

			err = wallet.Withdraw(tx, allocation.Amount)
			if err != nil {
				return err
			}

			err = tx.Unscoped().Delete(&allocation).Error
			if err != nil {
				return err
			}
		}

		err = tx.Unscoped().Where(&WeeklyBudget{BudgetID: b.ID}).Delete(&WeeklyBudget{}).Error
		if err != nil {
			return err
		}

		return tx.Unscoped().Delete(b).Error
	})
}
