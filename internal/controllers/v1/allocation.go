package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yuk-nabung/backend/internal/httputil"
	"github.com/yuk-nabung/backend/internal/models"
)

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.POST("", CreateAllocation)
	r.DELETE("/:id", DeleteAllocation)
}

// AllocationEditable are the fields of an allocation that callers set.
type AllocationEditable struct {
	BudgetID uuid.UUID       `json:"budgetId" binding:"required" example:"55eecbd8-7c46-4b06-ada9-f287802fb05e"`
	WalletID uuid.UUID       `json:"walletId" binding:"required" example:"d3c4c4a3-cb18-4f21-a013-c721553d798b"`
	Amount   decimal.Decimal `json:"amount" example:"200000"`
}

type AllocationResponse struct {
	Data  *models.Allocation `json:"data"`
	Error *string            `json:"error"`
}

// CreateAllocation moves planned budget money into a wallet. Budget
// and wallet must both belong to the requesting user; at most one
// allocation may exist per wallet and budget.
func CreateAllocation(c *gin.Context) {
	var editable AllocationEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &s})
		return
	}

	user := currentUser(c)

	err = models.DB.
		Where(&models.Budget{UserID: user.ID}).
		First(&models.Budget{}, editable.BudgetID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &s})
		return
	}

	err = models.DB.
		Where(&models.Wallet{UserID: user.ID}).
		First(&models.Wallet{}, editable.WalletID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &s})
		return
	}

	allocation := models.Allocation{
		BudgetID: editable.BudgetID,
		WalletID: editable.WalletID,
		Amount:   editable.Amount,
	}

	err = models.CreateAllocation(models.DB, &allocation)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AllocationResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, AllocationResponse{Data: &allocation})
}

// DeleteAllocation removes an allocation and returns its amount to the
// pre-allocation state of the wallet. Ownership is checked through the
// allocation's budget.
func DeleteAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.
		Where(&models.Budget{UserID: currentUser(c).ID}).
		First(&models.Budget{}, allocation.BudgetID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = allocation.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
