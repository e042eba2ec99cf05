package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yuk-nabung/backend/internal/httputil"
	"github.com/yuk-nabung/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for budgets with the
// RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.GET("", GetBudgets)
	r.POST("", CreateBudget)

	r.GET("/:id", GetBudget)
	r.PATCH("/:id", UpdateBudget)
	r.DELETE("/:id", DeleteBudget)

	r.GET("/:id/weeks", GetWeeklyBudgets)
	r.POST("/:id/weeks", CreateWeeklyBudget)
}

// BudgetEditable are the fields of a budget that callers set.
//
// Every numeric field is a required planning figure: a budget without
// real numbers has no meaning, so zero values are rejected as missing.
type BudgetEditable struct {
	Month          uint8           `json:"month" example:"3"`
	Year           uint            `json:"year" example:"2024"`
	Salary         decimal.Decimal `json:"salary" example:"5000000"`
	SavingTarget   decimal.Decimal `json:"savingTarget" example:"1000000"`
	SpendingTarget decimal.Decimal `json:"spendingTarget" example:"3000000"`
	WeeklyBudget   decimal.Decimal `json:"weeklyBudget" example:"700000"`
}

func (editable BudgetEditable) validate() error {
	if editable.Month < 1 || editable.Month > 12 {
		return errBudgetMonthInvalid
	}

	if editable.Year == 0 {
		return errBudgetYearNotSet
	}

	for _, amount := range []decimal.Decimal{editable.Salary, editable.SavingTarget, editable.SpendingTarget, editable.WeeklyBudget} {
		if amount.IsZero() {
			return errBudgetFieldsRequired
		}
	}

	return nil
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Month:          editable.Month,
		Year:           editable.Year,
		Salary:         editable.Salary,
		SavingTarget:   editable.SavingTarget,
		SpendingTarget: editable.SpendingTarget,
		WeeklyBudget:   editable.WeeklyBudget,
	}
}

type BudgetResponse struct {
	Data  *models.Budget `json:"data"`
	Error *string        `json:"error"`
}

type BudgetListResponse struct {
	Data  []models.Budget `json:"data"`
	Error *string         `json:"error"`
}

// CreateBudget creates a new monthly budget for the requesting user.
// Only one budget may exist per user and month.
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err == nil {
		err = editable.validate()
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	budget := editable.model()
	budget.UserID = currentUser(c).ID

	err = models.DB.Create(&budget).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &budget})
}

// GetBudgets returns all budgets of the requesting user, newest month
// first.
func GetBudgets(c *gin.Context) {
	var budgets []models.Budget
	err := models.DB.
		Where(&models.Budget{UserID: currentUser(c).ID}).
		Order("year DESC, month DESC").
		Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// getUserBudget loads a budget by URI ID, scoped to the requesting
// user. Budgets of other users are indistinguishable from missing ones.
func getUserBudget(c *gin.Context) (models.Budget, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return models.Budget{}, false
	}

	var budget models.Budget
	err = models.DB.
		Where(&models.Budget{UserID: currentUser(c).ID}).
		First(&budget, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Budget{}, false
	}

	return budget, true
}

// GetBudget returns a specific budget.
func GetBudget(c *gin.Context) {
	budget, ok := getUserBudget(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// UpdateBudget updates a budget's planning figures. The same
// required-field validation as for creation applies; allocations are
// not touched.
func UpdateBudget(c *gin.Context) {
	budget, ok := getUserBudget(c)
	if !ok {
		return
	}

	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err == nil {
		err = editable.validate()
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	err = models.DB.Model(&budget).
		Select("Month", "Year", "Salary", "SavingTarget", "SpendingTarget", "WeeklyBudget").
		Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// DeleteBudget deletes a budget with its weekly budgets and
// allocations, reversing every allocation on its wallet.
func DeleteBudget(c *gin.Context) {
	budget, ok := getUserBudget(c)
	if !ok {
		return
	}

	err := budget.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// WeeklyBudgetEditable are the fields of a weekly budget callers set.
type WeeklyBudgetEditable struct {
	WeekNumber    uint8           `json:"weekNumber" example:"1"`
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"700000"`
}

type WeeklyBudgetResponse struct {
	Data  *models.WeeklyBudget `json:"data"`
	Error *string              `json:"error"`
}

type WeeklyBudgetListResponse struct {
	Data  []models.WeeklyBudget `json:"data"`
	Error *string               `json:"error"`
}

// CreateWeeklyBudget adds a weekly sub-budget to a budget. Week numbers
// are unique per budget.
func CreateWeeklyBudget(c *gin.Context) {
	budget, ok := getUserBudget(c)
	if !ok {
		return
	}

	var editable WeeklyBudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeeklyBudgetResponse{Error: &s})
		return
	}

	if editable.WeekNumber < 1 {
		s := errWeekNumberInvalid.Error()
		c.JSON(http.StatusBadRequest, WeeklyBudgetResponse{Error: &s})
		return
	}

	weeklyBudget := models.WeeklyBudget{
		BudgetID:      budget.ID,
		WeekNumber:    editable.WeekNumber,
		PlannedAmount: editable.PlannedAmount,
	}

	err = models.CreateWeeklyBudget(models.DB, &weeklyBudget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeeklyBudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, WeeklyBudgetResponse{Data: &weeklyBudget})
}

// GetWeeklyBudgets lists the weekly sub-budgets of a budget.
func GetWeeklyBudgets(c *gin.Context) {
	budget, ok := getUserBudget(c)
	if !ok {
		return
	}

	var weeklyBudgets []models.WeeklyBudget
	err := models.DB.
		Where(&models.WeeklyBudget{BudgetID: budget.ID}).
		Order("week_number ASC").
		Find(&weeklyBudgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeeklyBudgetListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, WeeklyBudgetListResponse{Data: weeklyBudgets})
}
