package models

import "errors"

var (
	// ErrGeneral is returned for store-level failures that cannot be
	// explained to the user. Callers should treat it as retryable.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is returned when an entity does not exist or
	// does not belong to the requesting user.
	ErrResourceNotFound = errors.New("there is no")

	ErrBudgetExists       = errors.New("a budget already exists for this month")
	ErrWeeklyBudgetExists = errors.New("a weekly budget already exists for this week number")
	ErrAllocationExists   = errors.New("an allocation for this wallet already exists in this budget")

	ErrAmountNotPositive    = errors.New("the amount must be larger than zero")
	ErrInvalidWalletType    = errors.New("the wallet type must be one of BANK, EWALLET, CASH")
	ErrWalletHasAllocations = errors.New("the wallet still has budget allocations and cannot be deleted")
	ErrInsufficientFunds    = errors.New("the wallet balance is not sufficient for this expense")
)
