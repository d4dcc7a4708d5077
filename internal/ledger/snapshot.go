package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/engine"
	"github.com/tally-ledger/tally/internal/model"
)

// rawSnapshot defers decoding of every field so a snapshot with foreign or
// partially-broken shapes can still be salvaged field by field.
type rawSnapshot struct {
	Budget    json.RawMessage `json:"budget"`
	Bills     json.RawMessage `json:"bills"`
	Accounts  json.RawMessage `json:"accounts"`
	Recurring json.RawMessage `json:"recurring"`
}

// ImportSnapshot replaces the ledger state with the contents of an exported
// snapshot. The bills list is required and is normalized record by record;
// accounts, recurring templates and budget are optional and fall back to
// the current state when absent or unreadable. On any validation failure
// the ledger is untouched.
func (l *Ledger) ImportSnapshot(ctx context.Context, data []byte) error {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedSnapshot, err)
	}

	var bills []map[string]any
	if raw.Bills == nil {
		return fmt.Errorf("%w: missing bills list", common.ErrMalformedSnapshot)
	}
	if err := json.Unmarshal(raw.Bills, &bills); err != nil {
		return fmt.Errorf("%w: bills is not a list", common.ErrMalformedSnapshot)
	}

	accounts := l.Accounts()
	if raw.Accounts != nil {
		var imported []model.Account
		if err := json.Unmarshal(raw.Accounts, &imported); err != nil {
			slog.Warn("ignoring unreadable accounts in snapshot", "error", err)
		} else if cleaned := cleanAccounts(imported); len(cleaned) > 0 {
			accounts = cleaned
		}
	}
	if len(accounts) == 0 {
		accounts = []model.Account{{ID: uuid.NewString(), Name: model.DefaultAccountName}}
		slog.Warn("snapshot import found no usable accounts, seeding default", "name", model.DefaultAccountName)
	}

	recurring := l.RecurringTemplates()
	if raw.Recurring != nil {
		var imported []model.RecurringTemplate
		if err := json.Unmarshal(raw.Recurring, &imported); err != nil {
			slog.Warn("ignoring unreadable recurring templates in snapshot", "error", err)
		} else {
			recurring = cleanTemplates(imported, accounts[0].ID)
		}
	}

	budget := l.budget
	if raw.Budget != nil {
		var imported float64
		if err := json.Unmarshal(raw.Budget, &imported); err == nil && model.ValidAmount(imported) {
			budget = model.RoundAmount(imported)
		}
	}

	transactions := engine.Normalize(bills, accounts[0].ID, l.now())
	l.sortLog(transactions)

	// All four aggregates land in one atomic write; a failed import leaves
	// the stored state exactly as it was.
	err := l.persistAllJSON(ctx, map[string]any{
		keyTransactions: transactions,
		keyAccounts:     accounts,
		keyRecurring:    recurring,
		keyBudget:       budget,
	})
	if err != nil {
		return err
	}

	l.transactions = transactions
	l.accounts = accounts
	l.recurring = recurring
	l.budget = budget

	slog.Info("imported snapshot",
		"transactions", len(transactions),
		"accounts", len(accounts),
		"recurring", len(recurring))
	return nil
}

// ExportSnapshot is a pure read: it assembles a versioned snapshot of the
// filtered transaction subset together with the full account and template
// sets and the budget.
func (l *Ledger) ExportSnapshot(f Filter) model.Snapshot {
	return model.Snapshot{
		Version:   model.SnapshotVersion,
		Budget:    l.budget,
		Bills:     l.Transactions(f),
		Accounts:  l.Accounts(),
		Recurring: l.RecurringTemplates(),
	}
}

func cleanAccounts(accounts []model.Account) []model.Account {
	out := make([]model.Account, 0, len(accounts))
	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if a.ID == "" || a.Name == "" || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}

func cleanTemplates(templates []model.RecurringTemplate, defaultAccountID string) []model.RecurringTemplate {
	out := make([]model.RecurringTemplate, 0, len(templates))
	for _, t := range templates {
		if t.Kind != model.KindExpense && t.Kind != model.KindIncome {
			continue
		}
		t.Amount = model.RoundAmount(t.Amount)
		if !model.ValidAmount(t.Amount) {
			continue
		}
		if t.DayOfMonth < 1 {
			t.DayOfMonth = 1
		}
		if t.DayOfMonth > 31 {
			t.DayOfMonth = 31
		}
		if !t.Category.MatchesKind(t.Kind) {
			t.Category = model.DefaultCategory(t.Kind)
		}
		if t.AccountID == "" {
			t.AccountID = defaultAccountID
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		out = append(out, t)
	}
	return out
}
