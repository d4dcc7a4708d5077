package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/model"
)

// MaterializeResult carries the outcome of one materialization pass.
// Changed is true when at least one template produced a transaction,
// signaling the caller to persist both the log and the template set.
type MaterializeResult struct {
	Log       []model.Transaction
	Templates []model.RecurringTemplate
	Changed   bool
}

// Materialize expands recurring templates into concrete transactions for
// the period containing now, at most once per template per calendar month.
// Templates already stamped with the current period are skipped, which makes
// repeated invocation within a month a no-op. Transfer-kind templates are
// never materialized; they are rejected upstream and skipped here.
//
// The inputs are not mutated; materialized transactions are injected at the
// head of the returned log, dated at the clamped day of month at noon.
func Materialize(templates []model.RecurringTemplate, log []model.Transaction, defaultAccountID string, now time.Time) MaterializeResult {
	period := model.PeriodOf(now)
	days := model.DaysInMonth(period)

	updated := make([]model.RecurringTemplate, len(templates))
	copy(updated, templates)

	var produced []model.Transaction
	for i, tmpl := range updated {
		if tmpl.Kind == model.KindTransfer {
			slog.Debug("skipping transfer-kind recurring template", "template_id", tmpl.ID)
			continue
		}
		if tmpl.LastApplied == period {
			continue
		}

		day := tmpl.DayOfMonth
		if day < 1 {
			day = 1
		}
		if day > days {
			day = days
		}

		accountID := tmpl.AccountID
		if accountID == "" {
			accountID = defaultAccountID
		}

		category := tmpl.Category
		if !category.MatchesKind(tmpl.Kind) {
			category = model.DefaultCategory(tmpl.Kind)
		}

		// Noon keeps the transaction inside the intended day across
		// timezone boundaries.
		produced = append(produced, model.Transaction{
			ID:        uuid.NewString(),
			Amount:    model.RoundAmount(tmpl.Amount),
			Kind:      tmpl.Kind,
			Category:  category,
			Note:      tmpl.Note,
			Date:      time.Date(period.Year, period.Month, day, 12, 0, 0, 0, now.Location()),
			AccountID: accountID,
		})
		updated[i].LastApplied = period
	}

	if len(produced) == 0 {
		return MaterializeResult{Log: log, Templates: updated, Changed: false}
	}

	slog.Debug("materialized recurring transactions", "count", len(produced), "period", period.String())
	return MaterializeResult{
		Log:       append(produced, log...),
		Templates: updated,
		Changed:   true,
	}
}
