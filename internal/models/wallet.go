package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletType describes where the money in a wallet lives.
type WalletType string

const (
	WalletTypeBank    WalletType = "BANK"
	WalletTypeEwallet WalletType = "EWALLET"
	WalletTypeCash    WalletType = "CASH"
)

// Wallet is a named balance bucket owned by a user.
//
// The balance is only mutated through the methods on Wallet so that
// every change stays inside the caller's transaction.
type Wallet struct {
	DefaultModel
	User    User            `json:"-"`
	UserID  uuid.UUID       `json:"userId" gorm:"index"`
	Name    string          `json:"name"`
	Type    WalletType      `json:"type" gorm:"check:wallet_type_valid,type IN ('BANK','EWALLET','CASH')"`
	Balance decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace and verifies the wallet type.
func (w *Wallet) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)

	switch w.Type {
	case WalletTypeBank, WalletTypeEwallet, WalletTypeCash:
		return nil
	}

	return ErrInvalidWalletType
}

// applyDelta adds a signed amount to the wallet balance inside the
// caller's transaction. The update is relative so that a stale struct
// can never overwrite balance changes that happened since it was read;
// the struct is refreshed from the row afterwards. Balance checks
// happen in Spend, not here.
func (w *Wallet) applyDelta(tx *gorm.DB, delta decimal.Decimal) error {
	err := tx.Model(w).Update("balance", gorm.Expr("balance + ?", delta)).Error
	if err != nil {
		return err
	}

	return tx.First(w, w.ID).Error
}

// Deposit increases the wallet balance. Used for allocations and
// add-funds, which are never rejected for balance reasons.
func (w *Wallet) Deposit(tx *gorm.DB, amount decimal.Decimal) error {
	return w.applyDelta(tx, amount)
}

// Withdraw decreases the wallet balance without a balance check.
// Used to reverse an allocation when it or its budget is deleted.
func (w *Wallet) Withdraw(tx *gorm.DB, amount decimal.Decimal) error {
	return w.applyDelta(tx, amount.Neg())
}

// Spend decreases the wallet balance for an expense. The spend is
// rejected when it would drive the balance negative, reporting the
// missing amount. The balance is re-read inside the transaction so the
// check never trusts a stale struct.
func (w *Wallet) Spend(tx *gorm.DB, amount decimal.Decimal) error {
	err := tx.First(w, w.ID).Error
	if err != nil {
		return err
	}

	if w.Balance.LessThan(amount) {
		return fmt.Errorf("%w: %s missing", ErrInsufficientFunds, amount.Sub(w.Balance))
	}

	return w.applyDelta(tx, amount.Neg())
}

// AddFunds deposits a strictly positive amount into the wallet and
// records an INCOME transaction for reconciliation.
func (w *Wallet) AddFunds(db *gorm.DB, amount decimal.Decimal, note string, now time.Time) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrAmountNotPositive
	}

	transaction := Transaction{
		WalletID: w.ID,
		Type:     TransactionTypeIncome,
		Amount:   amount,
		Note:     note,
		Date:     now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := w.Deposit(tx, amount); err != nil {
			return err
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// Delete removes the wallet. Deletion is refused while a budget
// allocation still references the wallet since removing it would
// silently discard allocated money.
func (w *Wallet) Delete(db *gorm.DB) error {
	var count int64
	err := db.Model(&Allocation{}).Where(&Allocation{WalletID: w.ID}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrWalletHasAllocations
	}

	return db.Delete(w).Error
}
