package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yuk-nabung/backend/internal/types"
)

// Dashboard is a read-only composition of the user's current financial
// state. Apart from the lazy creation of today's daily record it
// mutates nothing.
type Dashboard struct {
	Today          DailyRecord     `json:"today"`
	Week           WeekSummary     `json:"week"`
	Month          MonthSummary    `json:"month"`
	Wallets        []Wallet        `json:"wallets"`
	SavingsBalance decimal.Decimal `json:"savingsBalance"`
}

// WeekSummary is the live view of the running week. The total is
// recomputed from the expense history over the week window, not from
// the WeeklyRecord, which only tracks already rolled-over days.
type WeekSummary struct {
	WeekStart    types.Day       `json:"weekStart"`
	WeekEnd      types.Day       `json:"weekEnd"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// MonthSummary is the live view of the running month. ProjectedSavings
// is the plan-based figure saving target + spending target - month to
// date expenses, clamped at zero; the authoritative savings balance
// lives on the user.
type MonthSummary struct {
	Budget           *Budget         `json:"budget"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	ProjectedSavings decimal.Decimal `json:"projectedSavings"`
}

// GetDashboard assembles the dashboard for a user at a point in time.
func GetDashboard(db *gorm.DB, userID uuid.UUID, now time.Time) (Dashboard, error) {
	day := types.DayOf(now)

	today, err := EnsureDailyRecord(db, userID, day)
	if err != nil {
		return Dashboard{}, err
	}

	var user User
	err = db.First(&user, userID).Error
	if err != nil {
		return Dashboard{}, err
	}

	var wallets []Wallet
	err = db.Where(&Wallet{UserID: userID}).Order("name ASC").Find(&wallets).Error
	if err != nil {
		return Dashboard{}, err
	}

	weekExpense, err := ExpenseSumBetween(db, userID, day.WeekStart().Time(), day.WeekEnd().AddDays(1).Time())
	if err != nil {
		return Dashboard{}, err
	}

	monthExpense, err := ExpenseSumBetween(db, userID, day.MonthStart().Time(), day.NextMonthStart().Time())
	if err != nil {
		return Dashboard{}, err
	}

	month := MonthSummary{
		TotalExpense:     monthExpense,
		ProjectedSavings: decimal.Zero,
	}

	budget, err := BudgetForDay(db, userID, day)
	if err == nil {
		month.Budget = &budget
		month.ProjectedSavings = clampZero(budget.SavingTarget.Add(budget.SpendingTarget).Sub(monthExpense))
	} else if !errors.Is(err, ErrResourceNotFound) {
		return Dashboard{}, err
	}

	return Dashboard{
		Today: today,
		Week: WeekSummary{
			WeekStart:    day.WeekStart(),
			WeekEnd:      day.WeekEnd(),
			TotalExpense: weekExpense,
		},
		Month:          month,
		Wallets:        wallets,
		SavingsBalance: user.SavingsBalance,
	}, nil
}
