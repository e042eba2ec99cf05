package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/types"
)

// DailyRecord is the per-user, per-day snapshot of budget consumption.
//
// BudgetRemaining may go negative, Leftover is clamped at zero. Records
// are created lazily and never deleted.
type DailyRecord struct {
	DefaultModel
	User            User            `json:"-"`
	UserID          uuid.UUID       `json:"userId" gorm:"uniqueIndex:daily_record_user_date"`
	Date            types.Day       `json:"date" gorm:"uniqueIndex:daily_record_user_date"`
	DailyBudget     decimal.Decimal `json:"dailyBudget" gorm:"type:DECIMAL(20,8)"`
	TotalExpense    decimal.Decimal `json:"totalExpense" gorm:"type:DECIMAL(20,8)"`
	BudgetRemaining decimal.Decimal `json:"dailyBudgetRemaining" gorm:"type:DECIMAL(20,8)"`
	Leftover        decimal.Decimal `json:"leftover" gorm:"type:DECIMAL(20,8)"`
}

// clampZero returns the decimal, or zero when it is negative.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// DailyBudgetFor computes the daily budget for a specific day from the
// budget of the month that day falls in: round(weeklyBudget / 7), or
// zero when no budget exists for the month.
//
// The budget of the day's own month is used, not the month that is
// current at call time, so editing next month's plan never rewrites
// older records.
func DailyBudgetFor(db *gorm.DB, userID uuid.UUID, day types.Day) (decimal.Decimal, error) {
	budget, err := BudgetForDay(db, userID, day)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return budget.DailyBudget(), nil
}

// EnsureDailyRecord returns the daily record for the given day,
// creating it when it does not exist. When the stored daily budget no
// longer matches the month's budget (the plan was edited), the record
// is recomputed from its own expenses.
//
// The operation is idempotent: the unique (user, date) key guards
// concurrent creation, a lost race falls back to reading the winner's
// row.
func EnsureDailyRecord(db *gorm.DB, userID uuid.UUID, day types.Day) (DailyRecord, error) {
	dailyBudget, err := DailyBudgetFor(db, userID, day)
	if err != nil {
		return DailyRecord{}, err
	}

	var record DailyRecord
	err = db.Where(&DailyRecord{UserID: userID, Date: day}).First(&record).Error
	if errors.Is(err, ErrResourceNotFound) {
		record = DailyRecord{
			UserID:          userID,
			Date:            day,
			DailyBudget:     dailyBudget,
			TotalExpense:    decimal.Zero,
			BudgetRemaining: dailyBudget,
			Leftover:        decimal.Zero,
		}

		err = db.Create(&record).Error
		if err != nil {
			// Lost the creation race, read the existing record instead
			err = db.Where(&DailyRecord{UserID: userID, Date: day}).First(&record).Error
		}

		return record, err
	}
	if err != nil {
		return DailyRecord{}, err
	}

	if !record.DailyBudget.Equal(dailyBudget) {
		record.DailyBudget = dailyBudget
		record.BudgetRemaining = dailyBudget.Sub(record.TotalExpense)
		record.Leftover = clampZero(record.BudgetRemaining)

		err = db.Model(&record).
			Select("DailyBudget", "BudgetRemaining", "Leftover").
			Updates(record).Error
		if err != nil {
			return DailyRecord{}, err
		}
	}

	return record, nil
}

// addExpense folds an expense amount into the record inside the
// caller's transaction.
func (r *DailyRecord) addExpense(tx *gorm.DB, amount decimal.Decimal) error {
	r.TotalExpense = r.TotalExpense.Add(amount)
	r.BudgetRemaining = r.DailyBudget.Sub(r.TotalExpense)
	r.Leftover = clampZero(r.BudgetRemaining)

	return tx.Model(r).
		Select("TotalExpense", "BudgetRemaining", "Leftover").
		Updates(*r).Error
}
