package ledger

import (
	"time"

	"github.com/tally-ledger/tally/internal/model"
)

// Filter selects a transaction subset. Empty slices and zero times mean
// "no constraint"; From and To are inclusive. Account membership matches
// either endpoint of a transfer.
type Filter struct {
	From       time.Time
	To         time.Time
	Kinds      []model.TransactionKind
	Categories []model.Category
	AccountIDs []string
}

// Matches reports whether the transaction satisfies every set predicate.
func (f Filter) Matches(t model.Transaction) bool {
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, t.Kind) {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, t.Category) {
		return false
	}
	if len(f.AccountIDs) > 0 && !referencesAccount(f.AccountIDs, t) {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

func containsKind(kinds []model.TransactionKind, k model.TransactionKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func containsCategory(categories []model.Category, c model.Category) bool {
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}

func referencesAccount(ids []string, t model.Transaction) bool {
	for _, id := range ids {
		if t.AccountID == id || (t.ToAccountID != "" && t.ToAccountID == id) {
			return true
		}
	}
	return false
}
