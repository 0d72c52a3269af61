package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrCreditLimitExceeded is the sentinel for credit-limit business rejections.
// Use CreditLimitExceededError to carry the offending amounts.
var ErrCreditLimitExceeded = errors.New("credit limit exceeded")

// ErrOverSettlement is the sentinel for settlement allocations that would exceed
// the amount of the credit line they target.
var ErrOverSettlement = errors.New("settlement exceeds outstanding credit amount")

// AppError wraps an underlying error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// CreditLimitExceededError reports a rejected credit extension together with the
// creditor's balance and limit so the caller can surface an actionable message.
type CreditLimitExceededError struct {
	CreditorID     string
	CurrentBalance decimal.Decimal
	CreditLimit    decimal.Decimal
	Requested      decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded for creditor %s: balance %s + requested %s > limit %s",
		e.CreditorID, e.CurrentBalance.String(), e.Requested.String(), e.CreditLimit.String())
}

func (e *CreditLimitExceededError) Unwrap() error {
	return ErrCreditLimitExceeded
}

// OverSettlementError reports a settlement allocation that would push the
// cumulative settled amount past the credit transaction's own amount.
type OverSettlementError struct {
	CreditTransactionID string
	CreditAmount        decimal.Decimal
	AlreadySettled      decimal.Decimal
	Requested           decimal.Decimal
}

func (e *OverSettlementError) Error() string {
	return fmt.Sprintf("over-settlement of credit transaction %s: settled %s + requested %s > amount %s",
		e.CreditTransactionID, e.AlreadySettled.String(), e.Requested.String(), e.CreditAmount.String())
}

func (e *OverSettlementError) Unwrap() error {
	return ErrOverSettlement
}
