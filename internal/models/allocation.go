package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation is a static transfer of planned budget money into a
// wallet. At most one allocation exists per wallet and budget.
type Allocation struct {
	DefaultModel
	Budget   Budget          `json:"-"`
	BudgetID uuid.UUID       `json:"budgetId" gorm:"uniqueIndex:allocation_budget_wallet"`
	Wallet   Wallet          `json:"-"`
	WalletID uuid.UUID       `json:"walletId" gorm:"uniqueIndex:allocation_budget_wallet"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
}

// CreateAllocation inserts the allocation and deposits its amount into
// the wallet as one unit. The row is inserted first so that a
// duplicate allocation fails before the wallet is touched.
func CreateAllocation(db *gorm.DB, allocation *Allocation) error {
	if !allocation.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(allocation).Error
		if err != nil {
			return err
		}

		var wallet Wallet
		err = tx.First(&wallet, allocation.WalletID).Error
		if err != nil {
			return err
		}

		return wallet.Deposit(tx, allocation.Amount)
	})
}

// Delete reverses the allocation's effect on the wallet and removes the
// row, as one unit. The row is removed for good so the wallet can be
// allocated to again from the same budget.
func (a *Allocation) Delete(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var wallet Wallet
		err := tx.First(&wallet, a.WalletID).Error
		if err != nil {
			return err
		}

		err = wallet.Withdraw(tx, a.Amount)
		if err != nil {
			return err
		}

		return tx.Unscoped().Delete(a).Error
	})
}
