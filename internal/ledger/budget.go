package ledger

import (
	"context"
	"log/slog"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/model"
)

// Budget returns the process-wide monthly budget.
func (l *Ledger) Budget() float64 {
	return l.budget
}

// SetBudget stores a new budget value, which must be positive.
func (l *Ledger) SetBudget(ctx context.Context, budget float64) error {
	budget = model.RoundAmount(budget)
	if !model.ValidAmount(budget) {
		return common.ErrInvalidAmount
	}

	if err := l.persistJSON(ctx, keyBudget, budget); err != nil {
		return err
	}
	l.budget = budget

	slog.Info("updated budget", "budget", budget)
	return nil
}

// MonthExpenseTotal sums the expenses recorded in the current calendar
// month. Income and transfers never count against the budget.
func (l *Ledger) MonthExpenseTotal() float64 {
	period := model.PeriodOf(l.now())
	var total float64
	for _, t := range l.transactions {
		if t.Kind == model.KindExpense && model.PeriodOf(t.Date) == period {
			total += t.Amount
		}
	}
	return total
}

// RemainingBudget is the budget left for the current calendar month,
// floored at zero. Historical months never influence it.
func (l *Ledger) RemainingBudget() float64 {
	remaining := l.budget - l.MonthExpenseTotal()
	if remaining < 0 {
		return 0
	}
	return remaining
}
