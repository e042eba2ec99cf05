package models

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/types"
)

// BatchResult reports how a batch job went. A failed user never aborts
// the batch, it is logged and counted.
type BatchResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// RunDailyReset closes yesterday for every user and opens today.
//
// For each user, as one transaction: a positive leftover on yesterday's
// daily record is folded into the weekly record of the week yesterday
// falls in, then today's daily record is created.
//
// The job is idempotent. A user whose daily record for today already
// exists is skipped entirely, so a rerun neither double-folds
// yesterday's leftover nor resets expenses already logged today.
func RunDailyReset(db *gorm.DB, now time.Time) (BatchResult, error) {
	today := types.DayOf(now)
	yesterday := today.AddDays(-1)

	var users []User
	err := db.Find(&users).Error
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, user := range users {
		skipped := false

		err := db.Transaction(func(tx *gorm.DB) error {
			var record DailyRecord
			err := tx.Where(&DailyRecord{UserID: user.ID, Date: today}).First(&record).Error
			if err == nil {
				skipped = true
				return nil
			}
			if !errors.Is(err, ErrResourceNotFound) {
				return err
			}

			err = tx.Where(&DailyRecord{UserID: user.ID, Date: yesterday}).First(&record).Error
			if err == nil && record.Leftover.IsPositive() {
				week, err := EnsureWeeklyRecord(tx, user.ID, yesterday)
				if err != nil {
					return err
				}

				err = week.fold(tx, record)
				if err != nil {
					return err
				}
			} else if err != nil && !errors.Is(err, ErrResourceNotFound) {
				return err
			}

			_, err = EnsureDailyRecord(tx, user.ID, today)
			return err
		})
		if err != nil {
			log.Error().Err(err).Str("user", user.ID.String()).Msg("daily reset failed for user")
			result.Failed++
			continue
		}

		if skipped {
			result.Skipped++
			continue
		}
		result.Processed++
	}

	log.Info().
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Str("date", today.String()).
		Msg("daily reset finished")

	return result, nil
}

// RunWeeklySettlement transfers the leftover of every completed,
// unsettled week into its user's savings balance.
//
// The transferred flag excludes settled records from the selection, so
// reruns are no-ops. Weeks that are still running are left alone since
// daily resets may still fold leftovers into them.
func RunWeeklySettlement(db *gorm.DB, now time.Time) (BatchResult, error) {
	today := types.DayOf(now)

	var records []WeeklyRecord
	err := db.
		Where("transferred_to_savings = ?", false).
		Where("date(week_end) < date(?)", today.Time()).
		Find(&records).Error
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, record := range records {
		record := record

		err := db.Transaction(func(tx *gorm.DB) error {
			return record.settle(tx)
		})
		if err != nil {
			log.Error().Err(err).Str("user", record.UserID.String()).Str("weekStart", record.WeekStart.String()).Msg("weekly settlement failed for user")
			result.Failed++
			continue
		}

		result.Processed++
	}

	log.Info().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Str("date", today.String()).
		Msg("weekly settlement finished")

	return result, nil
}
