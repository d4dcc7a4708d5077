// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Parse errors.
	ErrNoAmount = errors.New("no amount recognized")

	// Validation errors.
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidCategory = errors.New("category does not match transaction kind")
	ErrSelfTransfer    = errors.New("transfer source and destination must differ")
	ErrMissingAccount  = errors.New("missing account")

	// Referential conflicts.
	ErrDuplicateAccount = errors.New("account name already exists")
	ErrAccountInUse     = errors.New("account is referenced by transactions")
	ErrLastAccount      = errors.New("the last account cannot be removed")

	// Import errors.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// Lookup errors.
	ErrNotFound = errors.New("not found")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
