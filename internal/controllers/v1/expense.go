package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yuk-nabung/backend/internal/httputil"
	"github.com/yuk-nabung/backend/internal/models"
	"github.com/yuk-nabung/backend/internal/types"
)

// RegisterExpenseRoutes registers the routes for expenses with the
// RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.POST("", CreateExpense)
	r.GET("/today", GetTodayExpenses)
}

// ExpenseEditable are the fields of an expense that callers set.
// Expenses are immutable once created.
type ExpenseEditable struct {
	WalletID uuid.UUID          `json:"walletId" binding:"required" example:"d3c4c4a3-cb18-4f21-a013-c721553d798b"`
	Amount   decimal.Decimal    `json:"amount" example:"30000"`
	Note     string             `json:"note" example:"lunch"`
	Type     models.ExpenseType `json:"type" example:"MEAL"`
}

type ExpenseResultResponse struct {
	Data  *models.ExpenseResult `json:"data"`
	Error *string               `json:"error"`
}

type ExpenseListResponse struct {
	Data  []models.Expense `json:"data"`
	Error *string          `json:"error"`
}

// CreateExpense records an expense against a wallet and folds it into
// today's daily record. Spending over the daily budget is allowed and
// reported through the isOverBudget flag of the response.
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResultResponse{Error: &s})
		return
	}

	result, err := models.RecordExpense(
		models.DB,
		currentUser(c).ID,
		editable.WalletID,
		editable.Amount,
		editable.Note,
		editable.Type,
		Now(),
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResultResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, ExpenseResultResponse{Data: &result})
}

// GetTodayExpenses lists the expenses the user logged today, newest
// first.
func GetTodayExpenses(c *gin.Context) {
	day := types.DayOf(Now())

	expenses, err := models.ExpensesBetween(
		models.DB,
		currentUser(c).ID,
		day.Time(),
		day.AddDays(1).Time(),
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}
