package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/engine"
	"github.com/tally-ledger/tally/internal/model"
)

// Accounts returns a copy of the live account set.
func (l *Ledger) Accounts() []model.Account {
	out := make([]model.Account, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// AccountByName returns the account with the given name, or false.
func (l *Ledger) AccountByName(name string) (model.Account, bool) {
	for _, a := range l.accounts {
		if a.Name == name {
			return a, true
		}
	}
	return model.Account{}, false
}

// AddAccount creates a new account. Names must be non-empty and unique
// among live accounts.
func (l *Ledger) AddAccount(ctx context.Context, name string) (model.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Account{}, common.NewUserError("account name cannot be empty", nil)
	}
	if _, exists := l.AccountByName(name); exists {
		return model.Account{}, fmt.Errorf("%w: %s", common.ErrDuplicateAccount, name)
	}

	account := model.Account{ID: uuid.NewString(), Name: name}
	next := append(l.Accounts(), account)

	if err := l.persistJSON(ctx, keyAccounts, next); err != nil {
		return model.Account{}, err
	}
	l.accounts = next

	slog.Info("added account", "id", account.ID, "name", name)
	return account, nil
}

// RemoveAccount deletes an account. The operation is refused while any
// transaction references the account as source or transfer destination, or
// any recurring template draws from it. The last account cannot be removed;
// the ledger always keeps a default account to route new entries to.
func (l *Ledger) RemoveAccount(ctx context.Context, id string) error {
	idx := -1
	for i, a := range l.accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, id)
	}
	if len(l.accounts) == 1 {
		return common.ErrLastAccount
	}

	for _, t := range l.transactions {
		if t.AccountID == id || t.ToAccountID == id {
			return fmt.Errorf("%w: account %s", common.ErrAccountInUse, id)
		}
	}
	for _, tmpl := range l.recurring {
		if tmpl.AccountID == id {
			return fmt.Errorf("%w: account %s has recurring templates", common.ErrAccountInUse, id)
		}
	}

	next := make([]model.Account, 0, len(l.accounts)-1)
	next = append(next, l.accounts[:idx]...)
	next = append(next, l.accounts[idx+1:]...)

	if err := l.persistJSON(ctx, keyAccounts, next); err != nil {
		return err
	}
	l.accounts = next

	slog.Info("removed account", "id", id)
	return nil
}

// Balances derives per-account signed balances from the full log.
func (l *Ledger) Balances() map[string]float64 {
	return engine.Balances(l.accounts, l.transactions)
}
