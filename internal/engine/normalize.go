// Package engine implements the pure transformations of the ledger: record
// normalization, balance calculation, and recurring materialization. Nothing
// in this package performs I/O or keeps state.
package engine

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/model"
)

// Normalize coerces arbitrary-shaped records, typically the bills list of an
// imported snapshot, into valid transactions. Records without a numeric
// amount are dropped, as are records whose amount normalizes to a non-finite
// or non-positive value, and transfers that collapse to a self-reference.
//
// Existing ids survive, so normalizing already-normalized output yields the
// same list. Output order follows input order; sorting is the caller's job.
func Normalize(records []map[string]any, defaultAccountID string, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(records))
	for i, rec := range records {
		txn, reason := normalizeRecord(rec, defaultAccountID, now)
		if reason != "" {
			slog.Debug("rejected record during normalization", "index", i, "reason", reason)
			continue
		}
		out = append(out, txn)
	}
	return out
}

// normalizeRecord decodes one record into a transaction. A non-empty reason
// marks the record as rejected.
func normalizeRecord(rec map[string]any, defaultAccountID string, now time.Time) (model.Transaction, string) {
	amount, ok := numericField(rec["amount"])
	if !ok {
		return model.Transaction{}, "no numeric amount"
	}
	amount = model.RoundAmount(amount)
	if !model.ValidAmount(amount) {
		return model.Transaction{}, "amount not a positive finite number"
	}

	// Only an exact income/transfer marker changes the kind; everything
	// else is an expense.
	kind := model.KindExpense
	switch stringField(rec["kind"]) {
	case string(model.KindIncome):
		kind = model.KindIncome
	case string(model.KindTransfer):
		kind = model.KindTransfer
	}

	category := model.DefaultCategory(kind)
	if c, ok := model.ParseCategory(stringField(rec["category"])); ok && c.MatchesKind(kind) {
		category = c
	}

	id := stringField(rec["id"])
	if id == "" {
		id = uuid.NewString()
	}

	accountID := stringField(rec["accountId"])
	if accountID == "" {
		accountID = defaultAccountID
	}

	txn := model.Transaction{
		ID:        id,
		Amount:    amount,
		Kind:      kind,
		Category:  category,
		Note:      stringField(rec["note"]),
		Date:      dateField(rec["date"], now),
		AccountID: accountID,
	}

	if kind == model.KindTransfer {
		to := stringField(rec["toAccountId"])
		if to == "" {
			to = defaultAccountID
		}
		if to == accountID {
			// A transfer with identical endpoints would silently act
			// as an expense; reject it instead.
			return model.Transaction{}, "transfer endpoints are identical"
		}
		txn.ToAccountID = to
	}

	return txn, ""
}

func numericField(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

func dateField(v any, now time.Time) time.Time {
	switch d := v.(type) {
	case time.Time:
		if !d.IsZero() {
			return d
		}
	case string:
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return t
		}
	}
	return now
}
