package v1_test

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/yuk-nabung/backend/internal/controllers/v1"
	"github.com/yuk-nabung/backend/test"
)

func (suite *TestSuiteStandard) TestCreateAllocation() {
	headers := suite.userHeader()
	wallet := suite.createTestWallet(headers, v1.WalletEditable{
		InitialBalance: decimal.NewFromInt(100000),
	})
	budget := suite.createTestBudget(headers, v1.BudgetEditable{})

	recorder := test.Request(suite.T(), "POST", "/v1/allocations", v1.AllocationEditable{
		BudgetID: budget.Data.ID,
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(200000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 201)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(200000)))

	// The wallet received the allocated money
	recorder = test.Request(suite.T(), "GET", fmt.Sprintf("/v1/wallets/%s", wallet.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 200)

	var reloaded v1.WalletResponse
	test.DecodeResponse(suite.T(), &recorder, &reloaded)
	assert.True(suite.T(), reloaded.Data.Balance.Equal(decimal.NewFromInt(300000)))

	// Same budget and wallet again
	recorder = test.Request(suite.T(), "POST", "/v1/allocations", v1.AllocationEditable{
		BudgetID: budget.Data.ID,
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(1),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 400)
}

func (suite *TestSuiteStandard) TestCreateAllocationUnknownReferences() {
	headers := suite.userHeader()
	wallet := suite.createTestWallet(headers, v1.WalletEditable{})
	budget := suite.createTestBudget(headers, v1.BudgetEditable{})

	recorder := test.Request(suite.T(), "POST", "/v1/allocations", v1.AllocationEditable{
		BudgetID: uuid.New(),
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(1000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 404)

	recorder = test.Request(suite.T(), "POST", "/v1/allocations", v1.AllocationEditable{
		BudgetID: budget.Data.ID,
		WalletID: uuid.New(),
		Amount:   decimal.NewFromInt(1000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 404)

	// A budget of another user is as good as missing
	foreign := suite.createTestBudget(suite.userHeader(), v1.BudgetEditable{})
	recorder = test.Request(suite.T(), "POST", "/v1/allocations", v1.AllocationEditable{
		BudgetID: foreign.Data.ID,
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(1000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 404)
}

func (suite *TestSuiteStandard) TestDeleteAllocation() {
	headers := suite.userHeader()
	wallet := suite.createTestWallet(headers, v1.WalletEditable{
		InitialBalance: decimal.NewFromInt(100000),
	})
	budget := suite.createTestBudget(headers, v1.BudgetEditable{})

	recorder := test.Request(suite.T(), "POST", "/v1/allocations", v1.AllocationEditable{
		BudgetID: budget.Data.ID,
		WalletID: wallet.Data.ID,
		Amount:   decimal.NewFromInt(200000),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 201)

	var allocation v1.AllocationResponse
	test.DecodeResponse(suite.T(), &recorder, &allocation)

	// A stranger cannot delete it
	recorder = test.Request(suite.T(), "DELETE", fmt.Sprintf("/v1/allocations/%s", allocation.Data.ID), "", suite.userHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, 404)

	recorder = test.Request(suite.T(), "DELETE", fmt.Sprintf("/v1/allocations/%s", allocation.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 204)

	// The wallet is back to its pre-allocation balance
	recorder = test.Request(suite.T(), "GET", fmt.Sprintf("/v1/wallets/%s", wallet.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, 200)

	var reloaded v1.WalletResponse
	test.DecodeResponse(suite.T(), &recorder, &reloaded)
	assert.True(suite.T(), reloaded.Data.Balance.Equal(decimal.NewFromInt(100000)))
}
