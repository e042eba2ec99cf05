package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yuk-nabung/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAllocationRoundTrip() {
	user := suite.createTestUser()
	wallet := suite.createTestWallet(models.Wallet{
		UserID:  user.ID,
		Balance: decimal.NewFromInt(500000),
	})
	budget := suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Month:        3,
		Year:         2024,
		WeeklyBudget: decimal.NewFromInt(700000),
	})

	allocation := suite.createTestAllocation(models.Allocation{
		BudgetID: budget.ID,
		WalletID: wallet.ID,
		Amount:   decimal.NewFromInt(200000),
	})

	var reloaded models.Wallet
	assert.Nil(suite.T(), models.DB.First(&reloaded, wallet.ID).Error)
	assert.True(suite.T(), reloaded.Balance.Equal(decimal.NewFromInt(700000)))

	assert.Nil(suite.T(), allocation.Delete(models.DB))

	assert.Nil(suite.T(), models.DB.First(&reloaded, wallet.ID).Error)
	assert.True(suite.T(), reloaded.Balance.Equal(decimal.NewFromInt(500000)), "round trip did not restore the balance: %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestAllocationDuplicate() {
	user := suite.createTestUser()
	wallet := suite.createTestWallet(models.Wallet{
		UserID:  user.ID,
		Balance: decimal.NewFromInt(500000),
	})
	budget := suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Month:        3,
		Year:         2024,
		WeeklyBudget: decimal.NewFromInt(700000),
	})

	suite.createTestAllocation(models.Allocation{
		BudgetID: budget.ID,
		WalletID: wallet.ID,
		Amount:   decimal.NewFromInt(200000),
	})

	err := models.CreateAllocation(models.DB, &models.Allocation{
		BudgetID: budget.ID,
		WalletID: wallet.ID,
		Amount:   decimal.NewFromInt(100000),
	})
	assert.ErrorIs(suite.T(), err, models.ErrAllocationExists)

	// The failed allocation must not have touched the wallet
	var reloaded models.Wallet
	assert.Nil(suite.T(), models.DB.First(&reloaded, wallet.ID).Error)
	assert.True(suite.T(), reloaded.Balance.Equal(decimal.NewFromInt(700000)), "wallet was mutated by a failed allocation: %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestAllocationAmountMustBePositive() {
	user := suite.createTestUser()
	wallet := suite.createTestWallet(models.Wallet{UserID: user.ID})
	budget := suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Month:        3,
		Year:         2024,
		WeeklyBudget: decimal.NewFromInt(700000),
	})

	err := models.CreateAllocation(models.DB, &models.Allocation{
		BudgetID: budget.ID,
		WalletID: wallet.ID,
		Amount:   decimal.NewFromInt(-5),
	})
	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestAllocationRecreateAfterDelete() {
	user := suite.createTestUser()
	wallet := suite.createTestWallet(models.Wallet{
		UserID:  user.ID,
		Balance: decimal.NewFromInt(500000),
	})
	budget := suite.createTestBudget(models.Budget{
		UserID:       user.ID,
		Month:        3,
		Year:         2024,
		WeeklyBudget: decimal.NewFromInt(700000),
	})

	allocation := suite.createTestAllocation(models.Allocation{
		BudgetID: budget.ID,
		WalletID: wallet.ID,
		Amount:   decimal.NewFromInt(200000),
	})
	assert.Nil(suite.T(), allocation.Delete(models.DB))

	// The same budget and wallet pair can be allocated again
	err := models.CreateAllocation(models.DB, &models.Allocation{
		BudgetID: budget.ID,
		WalletID: wallet.ID,
		Amount:   decimal.NewFromInt(150000),
	})
	assert.Nil(suite.T(), err, "re-allocating after delete failed: %s", err)

	var reloaded models.Wallet
	assert.Nil(suite.T(), models.DB.First(&reloaded, wallet.ID).Error)
	assert.True(suite.T(), reloaded.Balance.Equal(decimal.NewFromInt(650000)))
}
