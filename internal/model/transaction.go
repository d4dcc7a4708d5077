// Package model defines the core data types shared across the application.
package model

import (
	"math"
	"time"
)

// TransactionKind identifies the direction of a money movement.
type TransactionKind string

const (
	// KindExpense represents money leaving an account.
	KindExpense TransactionKind = "expense"
	// KindIncome represents money entering an account.
	KindIncome TransactionKind = "income"
	// KindTransfer represents money moving between two accounts.
	KindTransfer TransactionKind = "transfer"
)

// ParseKind returns the kind matching s, or false when s is not a known kind.
func ParseKind(s string) (TransactionKind, bool) {
	switch TransactionKind(s) {
	case KindExpense, KindIncome, KindTransfer:
		return TransactionKind(s), true
	}
	return "", false
}

// Transaction represents a single recorded money movement.
//
// ToAccountID is set if and only if Kind is KindTransfer, and must differ
// from AccountID. ID, Kind, Date and the account endpoints never change
// after creation; amount, category and note may be edited.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	Category    Category        `json:"category"`
	Note        string          `json:"note"`
	AccountID   string          `json:"accountId"`
	ToAccountID string          `json:"toAccountId,omitempty"`
	Amount      float64         `json:"amount"`
}

// RoundAmount rounds a monetary value to 2 fractional digits.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidAmount reports whether v is a usable transaction amount: finite and
// strictly positive.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Account is a named container that transactions debit and credit.
// Names are unique among live accounts.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultAccountName is the name of the account created on first run.
const DefaultAccountName = "Cash"
