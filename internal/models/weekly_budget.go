package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WeeklyBudget is a planning sub-budget for one week of a monthly
// budget, numbered 1..N within the month.
type WeeklyBudget struct {
	DefaultModel
	Budget          Budget          `json:"-"`
	BudgetID        uuid.UUID       `json:"budgetId" gorm:"uniqueIndex:weekly_budget_week"`
	WeekNumber      uint8           `json:"weekNumber" gorm:"uniqueIndex:weekly_budget_week;check:week_number >= 1"`
	PlannedAmount   decimal.Decimal `json:"plannedAmount" gorm:"type:DECIMAL(20,8)"`
	SpentAmount     decimal.Decimal `json:"spentAmount" gorm:"type:DECIMAL(20,8)"`
	RemainingAmount decimal.Decimal `json:"remainingAmount" gorm:"type:DECIMAL(20,8)"`
}

// CreateWeeklyBudget inserts a new weekly budget. The spent amount
// starts at zero, the remaining amount at the planned amount.
func CreateWeeklyBudget(db *gorm.DB, weeklyBudget *WeeklyBudget) error {
	weeklyBudget.SpentAmount = decimal.Zero
	weeklyBudget.RemainingAmount = weeklyBudget.PlannedAmount

	return db.Create(weeklyBudget).Error
}
