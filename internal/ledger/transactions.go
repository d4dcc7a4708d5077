package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/model"
	"github.com/tally-ledger/tally/internal/parse"
)

// AddTransaction validates and appends a transaction to the log. A zero ID
// or date is filled in; an empty category gets the kind's default; an empty
// source account gets the default account. Transfers must name two distinct
// accounts.
func (l *Ledger) AddTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	txn.Amount = model.RoundAmount(txn.Amount)
	if !model.ValidAmount(txn.Amount) {
		return model.Transaction{}, common.ErrInvalidAmount
	}

	if _, ok := model.ParseKind(string(txn.Kind)); !ok {
		return model.Transaction{}, fmt.Errorf("%w: %q", common.ErrInvalidKind, txn.Kind)
	}

	if txn.Category == "" {
		txn.Category = model.DefaultCategory(txn.Kind)
	}
	if !txn.Category.MatchesKind(txn.Kind) {
		return model.Transaction{}, fmt.Errorf("%w: %s is not a %s category", common.ErrInvalidCategory, txn.Category, txn.Kind)
	}

	if txn.AccountID == "" {
		txn.AccountID = l.defaultAccountID()
	}

	switch txn.Kind {
	case model.KindTransfer:
		if txn.ToAccountID == "" {
			return model.Transaction{}, fmt.Errorf("%w: transfer destination", common.ErrMissingAccount)
		}
		if txn.ToAccountID == txn.AccountID {
			return model.Transaction{}, common.ErrSelfTransfer
		}
	default:
		txn.ToAccountID = ""
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.Date.IsZero() {
		txn.Date = l.now()
	}

	next := make([]model.Transaction, 0, len(l.transactions)+1)
	next = append(next, txn)
	next = append(next, l.transactions...)
	l.sortLog(next)

	if err := l.persistJSON(ctx, keyTransactions, next); err != nil {
		return model.Transaction{}, err
	}
	l.transactions = next

	slog.Debug("added transaction", "id", txn.ID, "kind", txn.Kind, "amount", txn.Amount)
	return txn, nil
}

// AddFromText parses free entry text and records the result as an expense.
// The parsed category is a guess; a non-empty categoryOverride replaces it,
// and a non-empty accountID picks the account. Text with no recognizable
// amount surfaces common.ErrNoAmount and creates nothing.
func (l *Ledger) AddFromText(ctx context.Context, text string, categoryOverride model.Category, accountID string) (model.Transaction, error) {
	parsed, err := parse.Parse(text, l.now())
	if err != nil {
		return model.Transaction{}, err
	}

	category := parsed.Category
	if categoryOverride != "" {
		category = categoryOverride
	}

	return l.AddTransaction(ctx, model.Transaction{
		Amount:    parsed.Amount,
		Kind:      model.KindExpense,
		Category:  category,
		Note:      parsed.Note,
		Date:      parsed.Date,
		AccountID: accountID,
	})
}

// TransactionEdit names the fields an edit may change. Nil fields keep
// their current value. Kind, account endpoints, date and id are immutable
// after creation.
type TransactionEdit struct {
	Amount   *float64
	Category *model.Category
	Note     *string
}

// EditTransaction applies an edit to the transaction with the given id.
func (l *Ledger) EditTransaction(ctx context.Context, id string, edit TransactionEdit) (model.Transaction, error) {
	idx := -1
	for i, t := range l.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Transaction{}, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	txn := l.transactions[idx]
	if edit.Amount != nil {
		amount := model.RoundAmount(*edit.Amount)
		if !model.ValidAmount(amount) {
			return model.Transaction{}, common.ErrInvalidAmount
		}
		txn.Amount = amount
	}
	if edit.Category != nil {
		if !edit.Category.MatchesKind(txn.Kind) {
			return model.Transaction{}, fmt.Errorf("%w: %s is not a %s category", common.ErrInvalidCategory, *edit.Category, txn.Kind)
		}
		txn.Category = *edit.Category
	}
	if edit.Note != nil {
		txn.Note = *edit.Note
	}

	next := make([]model.Transaction, len(l.transactions))
	copy(next, l.transactions)
	next[idx] = txn
	l.sortLog(next)

	if err := l.persistJSON(ctx, keyTransactions, next); err != nil {
		return model.Transaction{}, err
	}
	l.transactions = next

	slog.Debug("edited transaction", "id", id)
	return txn, nil
}

// DeleteTransaction removes the transaction with the given id from the log.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	next := make([]model.Transaction, 0, len(l.transactions))
	found := false
	for _, t := range l.transactions {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	if err := l.persistJSON(ctx, keyTransactions, next); err != nil {
		return err
	}
	l.transactions = next

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// Transactions returns the transactions matching the filter, newest first.
func (l *Ledger) Transactions(f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
