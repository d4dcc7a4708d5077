package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/engine"
	"github.com/tally-ledger/tally/internal/model"
)

// RecurringTemplates returns a copy of the template set.
func (l *Ledger) RecurringTemplates() []model.RecurringTemplate {
	out := make([]model.RecurringTemplate, len(l.recurring))
	copy(out, l.recurring)
	return out
}

// AddRecurringTemplate validates and stores a monthly template. Templates
// are expense or income only, never transfer.
func (l *Ledger) AddRecurringTemplate(ctx context.Context, tmpl model.RecurringTemplate) (model.RecurringTemplate, error) {
	if tmpl.Kind != model.KindExpense && tmpl.Kind != model.KindIncome {
		return model.RecurringTemplate{}, fmt.Errorf("%w: recurring templates cannot be %q", common.ErrInvalidKind, tmpl.Kind)
	}

	tmpl.Amount = model.RoundAmount(tmpl.Amount)
	if !model.ValidAmount(tmpl.Amount) {
		return model.RecurringTemplate{}, common.ErrInvalidAmount
	}

	if tmpl.DayOfMonth < 1 || tmpl.DayOfMonth > 31 {
		return model.RecurringTemplate{}, common.NewUserError("day of month must be between 1 and 31", nil)
	}

	if tmpl.Category == "" {
		tmpl.Category = model.DefaultCategory(tmpl.Kind)
	}
	if !tmpl.Category.MatchesKind(tmpl.Kind) {
		return model.RecurringTemplate{}, fmt.Errorf("%w: %s is not a %s category", common.ErrInvalidCategory, tmpl.Category, tmpl.Kind)
	}

	if tmpl.AccountID == "" {
		tmpl.AccountID = l.defaultAccountID()
	}
	if tmpl.ID == "" {
		tmpl.ID = uuid.NewString()
	}
	tmpl.LastApplied = model.PeriodKey{}

	next := append(l.RecurringTemplates(), tmpl)
	if err := l.persistJSON(ctx, keyRecurring, next); err != nil {
		return model.RecurringTemplate{}, err
	}
	l.recurring = next

	slog.Info("added recurring template", "id", tmpl.ID, "day", tmpl.DayOfMonth)
	return tmpl, nil
}

// RemoveRecurringTemplate deletes a template. Transactions it already
// materialized stay in the log.
func (l *Ledger) RemoveRecurringTemplate(ctx context.Context, id string) error {
	next := make([]model.RecurringTemplate, 0, len(l.recurring))
	found := false
	for _, t := range l.recurring {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return fmt.Errorf("%w: recurring template %s", common.ErrNotFound, id)
	}

	if err := l.persistJSON(ctx, keyRecurring, next); err != nil {
		return err
	}
	l.recurring = next

	slog.Info("removed recurring template", "id", id)
	return nil
}

// MaterializeRecurring runs the month-tick: every template that has not yet
// applied in the current calendar month produces one transaction. Safe to
// call on every session start; repeat calls within a month change nothing.
// Returns whether anything was materialized.
func (l *Ledger) MaterializeRecurring(ctx context.Context) (bool, error) {
	result := engine.Materialize(l.recurring, l.transactions, l.defaultAccountID(), l.now())
	if !result.Changed {
		return false, nil
	}

	l.sortLog(result.Log)
	// One atomic write: the materialized transactions must never become
	// durable without the LastApplied stamps, or the next session would
	// book them a second time.
	err := l.persistAllJSON(ctx, map[string]any{
		keyTransactions: result.Log,
		keyRecurring:    result.Templates,
	})
	if err != nil {
		return false, err
	}
	l.transactions = result.Log
	l.recurring = result.Templates

	return true, nil
}
