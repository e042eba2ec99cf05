package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/types"
)

// ExpenseType is a rough category for an expense.
type ExpenseType string

const (
	ExpenseTypeMeal      ExpenseType = "MEAL"
	ExpenseTypeTransport ExpenseType = "TRANSPORT"
	ExpenseTypeShopping  ExpenseType = "SHOPPING"
	ExpenseTypeBill      ExpenseType = "BILL"
	ExpenseTypeOther     ExpenseType = "OTHER"
)

// Expense is a single spend against a wallet. Expenses are immutable
// once created, there is no update or delete.
type Expense struct {
	DefaultModel
	User     User            `json:"-"`
	UserID   uuid.UUID       `json:"userId" gorm:"index"`
	Wallet   Wallet          `json:"-"`
	WalletID uuid.UUID       `json:"walletId" gorm:"index"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Note     string          `json:"note,omitempty"`
	Type     ExpenseType     `json:"type"`
	Date     time.Time       `json:"date"`
}

// BeforeSave trims the note, defaults the type and normalizes the date
// to UTC.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if e.Type == "" {
		e.Type = ExpenseTypeMeal
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone.
func (e *Expense) AfterFind(_ *gorm.DB) (err error) {
	e.Date = e.Date.In(time.UTC)
	return nil
}

// ExpenseResult is what a recorded expense looks like to the caller:
// the expense itself, the daily record it updated and whether the
// expense pushed the day over its budget.
type ExpenseResult struct {
	Expense      Expense     `json:"expense"`
	DailyRecord  DailyRecord `json:"dailyRecord"`
	IsOverBudget bool        `json:"isOverBudget"`
}

// RecordExpense logs an expense for the user.
//
// All validation happens before any write. The expense row, the wallet
// delta, the EXPENSE ledger entry and the daily record update then
// commit as a single transaction: a failure in any of them leaves no
// trace of the expense.
//
// Spending more than the remaining daily budget is allowed, the result
// only flags it.
func RecordExpense(db *gorm.DB, userID, walletID uuid.UUID, amount decimal.Decimal, note string, expenseType ExpenseType, now time.Time) (ExpenseResult, error) {
	if !amount.IsPositive() {
		return ExpenseResult{}, ErrAmountNotPositive
	}

	var wallet Wallet
	err := db.Where(&Wallet{UserID: userID}).First(&wallet, walletID).Error
	if err != nil {
		return ExpenseResult{}, err
	}

	if wallet.Balance.LessThan(amount) {
		return ExpenseResult{}, fmt.Errorf("%w: %s missing", ErrInsufficientFunds, amount.Sub(wallet.Balance))
	}

	var result ExpenseResult
	err = db.Transaction(func(tx *gorm.DB) error {
		record, err := EnsureDailyRecord(tx, userID, types.DayOf(now))
		if err != nil {
			return err
		}

		// The flag compares against the remaining budget before this
		// expense is applied
		result.IsOverBudget = amount.GreaterThan(record.BudgetRemaining)

		expense := Expense{
			UserID:   userID,
			WalletID: walletID,
			Amount:   amount,
			Note:     note,
			Type:     expenseType,
			Date:     now,
		}
		err = tx.Create(&expense).Error
		if err != nil {
			return err
		}

		err = wallet.Spend(tx, amount)
		if err != nil {
			return err
		}

		err = tx.Create(&Transaction{
			WalletID: walletID,
			Type:     TransactionTypeExpense,
			Amount:   amount,
			Note:     note,
			Date:     now,
		}).Error
		if err != nil {
			return err
		}

		err = record.addExpense(tx, amount)
		if err != nil {
			return err
		}

		result.Expense = expense
		result.DailyRecord = record
		return nil
	})
	if err != nil {
		return ExpenseResult{}, err
	}

	return result, nil
}

// ExpensesBetween returns all expenses of a user in [from, until),
// newest first.
func ExpensesBetween(db *gorm.DB, userID uuid.UUID, from, until time.Time) ([]Expense, error) {
	var expenses []Expense
	err := db.
		Where(&Expense{UserID: userID}).
		Where("datetime(date) >= datetime(?) AND datetime(date) < datetime(?)", from.In(time.UTC), until.In(time.UTC)).
		Order("datetime(date) DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// ExpenseSumBetween returns the sum of a user's expenses in [from, until).
func ExpenseSumBetween(db *gorm.DB, userID uuid.UUID, from, until time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Model(&Expense{}).
		Where(&Expense{UserID: userID}).
		Where("datetime(date) >= datetime(?) AND datetime(date) < datetime(?)", from.In(time.UTC), until.In(time.UTC)).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}
