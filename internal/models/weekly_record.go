package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/types"
)

// WeeklyRecord accumulates the daily leftovers of one Monday-to-Sunday
// week until the weekly settlement moves them into the user's savings
// balance. Live in-week spending is not tracked here, only rolled-over
// days.
type WeeklyRecord struct {
	DefaultModel
	User                 User            `json:"-"`
	UserID               uuid.UUID       `json:"userId" gorm:"uniqueIndex:weekly_record_user_week"`
	WeekStart            types.Day       `json:"weekStart" gorm:"uniqueIndex:weekly_record_user_week"`
	WeekEnd              types.Day       `json:"weekEnd"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses" gorm:"type:DECIMAL(20,8)"`
	WeeklyLeftover       decimal.Decimal `json:"weeklyLeftover" gorm:"type:DECIMAL(20,8)"`
	TransferredToSavings bool            `json:"transferredToSavings"`
}

// EnsureWeeklyRecord returns the weekly record for the week a day falls
// in, creating it when it does not exist. Idempotent under the unique
// (user, weekStart) key.
func EnsureWeeklyRecord(db *gorm.DB, userID uuid.UUID, day types.Day) (WeeklyRecord, error) {
	weekStart := day.WeekStart()

	var record WeeklyRecord
	err := db.Where(&WeeklyRecord{UserID: userID, WeekStart: weekStart}).First(&record).Error
	if errors.Is(err, ErrResourceNotFound) {
		record = WeeklyRecord{
			UserID:         userID,
			WeekStart:      weekStart,
			WeekEnd:        day.WeekEnd(),
			TotalExpenses:  decimal.Zero,
			WeeklyLeftover: decimal.Zero,
		}

		err = db.Create(&record).Error
		if err != nil {
			err = db.Where(&WeeklyRecord{UserID: userID, WeekStart: weekStart}).First(&record).Error
		}

		return record, err
	}
	if err != nil {
		return WeeklyRecord{}, err
	}

	return record, nil
}

// fold accumulates a settled day into the weekly record inside the
// caller's transaction.
func (r *WeeklyRecord) fold(tx *gorm.DB, daily DailyRecord) error {
	r.WeeklyLeftover = r.WeeklyLeftover.Add(daily.Leftover)
	r.TotalExpenses = r.TotalExpenses.Add(daily.TotalExpense)

	return tx.Model(r).
		Select("WeeklyLeftover", "TotalExpenses").
		Updates(*r).Error
}

// settle transfers the accumulated leftover into the user's savings
// balance and marks the record as transferred. The flag is set even for
// a zero leftover so the record is never revisited.
func (r *WeeklyRecord) settle(tx *gorm.DB) error {
	if r.WeeklyLeftover.IsPositive() {
		var user User
		err := tx.First(&user, r.UserID).Error
		if err != nil {
			return err
		}

		err = tx.Model(&user).
			Update("savings_balance", user.SavingsBalance.Add(r.WeeklyLeftover)).Error
		if err != nil {
			return err
		}
	}

	r.TransferredToSavings = true
	return tx.Model(r).Update("transferred_to_savings", true).Error
}
