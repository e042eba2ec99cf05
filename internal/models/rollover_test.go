package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yuk-nabung/backend/internal/models"
	"github.com/yuk-nabung/backend/internal/types"
)

func (suite *TestSuiteStandard) TestDailyResetFoldsLeftover() {
	user := suite.createTestUser()
	wallet := suite.createTestWallet(models.Wallet{
		UserID:  user.ID,
		Balance: decimal.NewFromInt(500000),
	})
	suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Month:        3,
		Year:         2024,
		WeeklyBudget: decimal.NewFromInt(700000),
	})

	// Wednesday: spend 30000, leaving a leftover of 70000
	_, err := models.RecordExpense(models.DB, user.ID, wallet.ID, decimal.NewFromInt(30000), "", models.ExpenseTypeMeal, testTime)
	assert.Nil(suite.T(), err)

	thursday := testTime.Add(24 * time.Hour)
	result, err := models.RunDailyReset(models.DB, thursday)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{Processed: 1}, result)

	var week models.WeeklyRecord
	err = models.DB.Where(&models.WeeklyRecord{UserID: user.ID}).First(&week).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), week.WeekStart.Equal(types.NewDay(2024, 3, 18)))
	assert.True(suite.T(), week.WeekEnd.Equal(types.NewDay(2024, 3, 24)))
	assert.True(suite.T(), week.WeeklyLeftover.Equal(decimal.NewFromInt(70000)), "leftover is %s", week.WeeklyLeftover)
	assert.True(suite.T(), week.TotalExpenses.Equal(decimal.NewFromInt(30000)))
	assert.False(suite.T(), week.TransferredToSavings)

	var today models.DailyRecord
	err = models.DB.Where(&models.DailyRecord{UserID: user.ID, Date: types.DayOf(thursday)}).First(&today).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), today.DailyBudget.Equal(decimal.NewFromInt(100000)))
	assert.True(suite.T(), today.TotalExpense.IsZero())

	// A rerun on the same day must not fold yesterday again
	result, err = models.RunDailyReset(models.DB, thursday.Add(time.Hour))
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{Skipped: 1}, result)

	err = models.DB.First(&week, week.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), week.WeeklyLeftover.Equal(decimal.NewFromInt(70000)), "rerun double-folded the leftover: %s", week.WeeklyLeftover)
}

// TestDailyResetOnMonday checks that a Monday run folds Sunday's
// leftover into the week that just ended, not into the new one.
func (suite *TestSuiteStandard) TestDailyResetOnMonday() {
	user := suite.createTestUser()
	wallet := suite.createTestWallet(models.Wallet{
		UserID:  user.ID,
		Balance: decimal.NewFromInt(500000),
	})
	suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Month:        3,
		Year:         2024,
		WeeklyBudget: decimal.NewFromInt(700000),
	})

	sunday := time.Date(2024, 3, 24, 14, 0, 0, 0, time.UTC)
	_, err := models.RecordExpense(models.DB, user.ID, wallet.ID, decimal.NewFromInt(60000), "", models.ExpenseTypeMeal, sunday)
	assert.Nil(suite.T(), err)

	monday := time.Date(2024, 3, 25, 0, 5, 0, 0, time.UTC)
	result, err := models.RunDailyReset(models.DB, monday)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{Processed: 1}, result)

	var week models.WeeklyRecord
	err = models.DB.Where(&models.WeeklyRecord{UserID: user.ID}).First(&week).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), week.WeekStart.Equal(types.NewDay(2024, 3, 18)), "Sunday belongs to the week starting Monday the 18th, got %s", week.WeekStart)
	assert.True(suite.T(), week.WeeklyLeftover.Equal(decimal.NewFromInt(40000)))
}

func (suite *TestSuiteStandard) TestDailyResetWithoutYesterday() {
	user := suite.createTestUser()

	result, err := models.RunDailyReset(models.DB, testTime)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{Processed: 1}, result)

	// No leftover to fold, so no weekly record appears
	var weeks int64
	models.DB.Model(&models.WeeklyRecord{}).Where(&models.WeeklyRecord{UserID: user.ID}).Count(&weeks)
	assert.Equal(suite.T(), int64(0), weeks)

	var today models.DailyRecord
	err = models.DB.Where(&models.DailyRecord{UserID: user.ID, Date: types.DayOf(testTime)}).First(&today).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), today.DailyBudget.IsZero())
}

func (suite *TestSuiteStandard) TestWeeklySettlement() {
	user := suite.createTestUser()

	record := models.WeeklyRecord{
		UserID:         user.ID,
		WeekStart:      types.NewDay(2024, 3, 18),
		WeekEnd:        types.NewDay(2024, 3, 24),
		TotalExpenses:  decimal.NewFromInt(650000),
		WeeklyLeftover: decimal.NewFromInt(50000),
	}
	assert.Nil(suite.T(), models.DB.Create(&record).Error)

	monday := time.Date(2024, 3, 25, 1, 0, 0, 0, time.UTC)
	result, err := models.RunWeeklySettlement(models.DB, monday)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{Processed: 1}, result)

	var reloadedUser models.User
	assert.Nil(suite.T(), models.DB.First(&reloadedUser, user.ID).Error)
	assert.True(suite.T(), reloadedUser.SavingsBalance.Equal(decimal.NewFromInt(50000)))

	assert.Nil(suite.T(), models.DB.First(&record, record.ID).Error)
	assert.True(suite.T(), record.TransferredToSavings)

	// Settling again is a no-op
	result, err = models.RunWeeklySettlement(models.DB, monday)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{}, result)

	assert.Nil(suite.T(), models.DB.First(&reloadedUser, user.ID).Error)
	assert.True(suite.T(), reloadedUser.SavingsBalance.Equal(decimal.NewFromInt(50000)), "rerun transferred the leftover twice")
}

func (suite *TestSuiteStandard) TestWeeklySettlementZeroLeftover() {
	user := suite.createTestUser()

	record := models.WeeklyRecord{
		UserID:    user.ID,
		WeekStart: types.NewDay(2024, 3, 18),
		WeekEnd:   types.NewDay(2024, 3, 24),
	}
	assert.Nil(suite.T(), models.DB.Create(&record).Error)

	result, err := models.RunWeeklySettlement(models.DB, time.Date(2024, 3, 26, 0, 0, 0, 0, time.UTC))
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{Processed: 1}, result)

	assert.Nil(suite.T(), models.DB.First(&record, record.ID).Error)
	assert.True(suite.T(), record.TransferredToSavings, "zero leftover still closes the week")

	var reloadedUser models.User
	assert.Nil(suite.T(), models.DB.First(&reloadedUser, user.ID).Error)
	assert.True(suite.T(), reloadedUser.SavingsBalance.IsZero())
}

func (suite *TestSuiteStandard) TestWeeklySettlementLeavesRunningWeek() {
	user := suite.createTestUser()

	record := models.WeeklyRecord{
		UserID:         user.ID,
		WeekStart:      types.NewDay(2024, 3, 18),
		WeekEnd:        types.NewDay(2024, 3, 24),
		WeeklyLeftover: decimal.NewFromInt(70000),
	}
	assert.Nil(suite.T(), models.DB.Create(&record).Error)

	// Sunday: the week has not ended yet
	result, err := models.RunWeeklySettlement(models.DB, time.Date(2024, 3, 24, 23, 0, 0, 0, time.UTC))
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.BatchResult{}, result)

	assert.Nil(suite.T(), models.DB.First(&record, record.ID).Error)
	assert.False(suite.T(), record.TransferredToSavings)
}
