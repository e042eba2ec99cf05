package v1

import (
	"errors"
	"net/http"

	"github.com/yuk-nabung/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no budget matching your query"`
}

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Budget errors
var (
	errBudgetMonthInvalid   = errors.New("the month must be between 1 and 12")
	errBudgetYearNotSet     = errors.New("the year must be set")
	errBudgetFieldsRequired = errors.New("salary, savingTarget, spendingTarget and weeklyBudget must all be set and non-zero")
)

// Weekly budget errors
var errWeekNumberInvalid = errors.New("the week number must be at least 1")

// Wallet errors
var errInitialBalanceNegative = errors.New("the initial balance must not be negative")
