package v1_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/yuk-nabung/backend/internal/controllers/v1"
	"github.com/yuk-nabung/backend/internal/models"
	"github.com/yuk-nabung/backend/test"
)

func (suite *TestSuiteStandard) TestCreateExpense() {
	headers := suite.userHeader()
	wallet := suite.createTestWallet(headers, v1.WalletEditable{
		InitialBalance: decimal.NewFromInt(500000),
	})
	suite.createTestBudget(headers, v1.BudgetEditable{})

	recorder := test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(30000),
		Note:     "lunch",
		Type:     models.ExpenseTypeMeal,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 201)

	var response v1.ExpenseResultResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	if !assert.NotNil(suite.T(), response.Data) {
		return
	}
	assert.False(suite.T(), response.Data.IsOverBudget)
	assert.True(suite.T(), response.Data.DailyRecord.DailyBudget.Equal(decimal.NewFromInt(100000)))
	assert.True(suite.T(), response.Data.DailyRecord.BudgetRemaining.Equal(decimal.NewFromInt(70000)))

	// The second expense blows the remaining 70000
	recorder = test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(90000),
		Type:     models.ExpenseTypeShopping,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 201)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.IsOverBudget)
	assert.True(suite.T(), response.Data.DailyRecord.BudgetRemaining.Equal(decimal.NewFromInt(-20000)))
	assert.True(suite.T(), response.Data.DailyRecord.Leftover.IsZero())
}

func (suite *TestSuiteStandard) TestCreateExpenseInvalid() {
	headers := suite.userHeader()
	wallet := suite.createTestWallet(headers, v1.WalletEditable{
		InitialBalance: decimal.NewFromInt(10000),
	})

	// More than the wallet holds
	recorder := test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(50000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 400)

	// Zero amount
	recorder = test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
		WalletID: wallet.Data.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 400)

	// Unknown wallet
	recorder = test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
		WalletID: uuid.New(),
		Amount:   decimal.NewFromInt(1000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 404)

	// Wallet of another user
	stranger := suite.createTestWallet(suite.userHeader(), v1.WalletEditable{
		InitialBalance: decimal.NewFromInt(10000),
	})
	recorder = test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
		WalletID: stranger.Data.ID,
		Amount:   decimal.NewFromInt(1000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 404)
}

func (suite *TestSuiteStandard) TestGetTodayExpenses() {
	headers := suite.userHeader()
	wallet := suite.createTestWallet(headers, v1.WalletEditable{
		InitialBalance: decimal.NewFromInt(500000),
	})

	for _, note := range []string{"breakfast", "lunch"} {
		recorder := test.Request(suite.T(), "POST", "/v1/expenses", v1.ExpenseEditable{
			WalletID: wallet.Data.ID,
			Amount:   decimal.NewFromInt(10000),
			Note:     note,
		}, headers)
		test.AssertHTTPStatus(suite.T(), &recorder, 201)
	}

	recorder := test.Request(suite.T(), "GET", "/v1/expenses/today", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 200)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)

	// Another user's today is empty
	recorder = test.Request(suite.T(), "GET", "/v1/expenses/today", "", suite.userHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, 200)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 0)
}
