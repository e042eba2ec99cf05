package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType marks the direction of a wallet ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction is a wallet ledger entry. It is an audit record for
// reconciliation, the rollover logic does not depend on it.
type Transaction struct {
	DefaultModel
	Wallet   Wallet          `json:"-"`
	WalletID uuid.UUID       `json:"walletId" gorm:"index"`
	Type     TransactionType `json:"type"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Note     string          `json:"note,omitempty"`
	Date     time.Time       `json:"date"`
}

// BeforeSave sets the timezone for the Date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}
