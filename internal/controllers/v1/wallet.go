package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/httputil"
	"github.com/yuk-nabung/backend/internal/models"
)

// RegisterWalletRoutes registers the routes for wallets with the
// RouterGroup that is passed.
func RegisterWalletRoutes(r *gin.RouterGroup) {
	r.GET("", GetWallets)
	r.POST("", CreateWallet)

	r.GET("/:id", GetWallet)
	r.PATCH("/:id", UpdateWallet)
	r.DELETE("/:id", DeleteWallet)

	r.POST("/:id/funds", AddFunds)
	r.GET("/:id/transactions", GetWalletTransactions)
}

// WalletEditable are the fields of a wallet that callers set. The
// initial balance is only read on creation, later balance changes go
// through funds, allocations and expenses.
type WalletEditable struct {
	Name           string            `json:"name" binding:"required" example:"BCA checking"`
	Type           models.WalletType `json:"type" binding:"required" example:"BANK"`
	InitialBalance decimal.Decimal   `json:"initialBalance" example:"500000"`
}

type WalletResponse struct {
	Data  *models.Wallet `json:"data"`
	Error *string        `json:"error"`
}

type WalletListResponse struct {
	Data  []models.Wallet `json:"data"`
	Error *string         `json:"error"`
}

// CreateWallet creates a wallet. A positive initial balance is
// recorded as an INCOME transaction so the wallet ledger reconciles
// from zero.
func CreateWallet(c *gin.Context) {
	var editable WalletEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{Error: &s})
		return
	}

	if editable.InitialBalance.IsNegative() {
		s := errInitialBalanceNegative.Error()
		c.JSON(http.StatusBadRequest, WalletResponse{Error: &s})
		return
	}

	wallet := models.Wallet{
		UserID:  currentUser(c).ID,
		Name:    editable.Name,
		Type:    editable.Type,
		Balance: editable.InitialBalance,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&wallet).Error
		if err != nil {
			return err
		}

		if !wallet.Balance.IsPositive() {
			return nil
		}

		return tx.Create(&models.Transaction{
			WalletID: wallet.ID,
			Type:     models.TransactionTypeIncome,
			Amount:   wallet.Balance,
			Note:     "initial balance",
			Date:     Now(),
		}).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, WalletResponse{Data: &wallet})
}

// GetWallets returns all wallets of the requesting user.
func GetWallets(c *gin.Context) {
	var wallets []models.Wallet
	err := models.DB.
		Where(&models.Wallet{UserID: currentUser(c).ID}).
		Order("name ASC").
		Find(&wallets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, WalletListResponse{Data: wallets})
}

// getUserWallet loads a wallet by URI ID, scoped to the requesting user.
func getUserWallet(c *gin.Context) (models.Wallet, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return models.Wallet{}, false
	}

	var wallet models.Wallet
	err = models.DB.
		Where(&models.Wallet{UserID: currentUser(c).ID}).
		First(&wallet, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Wallet{}, false
	}

	return wallet, true
}

// GetWallet returns a specific wallet.
func GetWallet(c *gin.Context) {
	wallet, ok := getUserWallet(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &wallet})
}

// WalletUpdate are the fields of a wallet that can change after
// creation. The balance is deliberately not among them.
type WalletUpdate struct {
	Name string            `json:"name" binding:"required" example:"BCA checking"`
	Type models.WalletType `json:"type" binding:"required" example:"BANK"`
}

// UpdateWallet renames or retypes a wallet.
func UpdateWallet(c *gin.Context) {
	wallet, ok := getUserWallet(c)
	if !ok {
		return
	}

	var update WalletUpdate
	err := httputil.BindData(c, &update)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{Error: &s})
		return
	}

	err = models.DB.Model(&wallet).
		Select("Name", "Type").
		Updates(models.Wallet{Name: update.Name, Type: update.Type}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WalletResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &wallet})
}

// DeleteWallet deletes a wallet. Deletion fails while budget
// allocations still reference the wallet.
func DeleteWallet(c *gin.Context) {
	wallet, ok := getUserWallet(c)
	if !ok {
		return
	}

	err := wallet.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// FundsEditable is the request body for adding funds to a wallet.
type FundsEditable struct {
	Amount decimal.Decimal `json:"amount" example:"250000"`
	Note   string          `json:"note" example:"salary"`
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error"`
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`
	Error *string              `json:"error"`
}

// AddFunds deposits a strictly positive amount into a wallet outside
// of any budget, e.g. a salary payment.
func AddFunds(c *gin.Context) {
	wallet, ok := getUserWallet(c)
	if !ok {
		return
	}

	var editable FundsEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	transaction, err := wallet.AddFunds(models.DB, editable.Amount, editable.Note, Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetWalletTransactions lists the ledger entries of a wallet, newest
// first.
func GetWalletTransactions(c *gin.Context) {
	wallet, ok := getUserWallet(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	err := models.DB.
		Where(&models.Transaction{WalletID: wallet.ID}).
		Order("datetime(date) DESC").
		Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}
