// Package ledger implements the ledger facade: it owns the canonical
// in-memory aggregates (transaction log, accounts, recurring templates,
// budget) and is the sole writer of their persisted mirrors. Every mutating
// operation validates its input, stages the change, persists the affected
// aggregates, and only then commits the in-memory state, so a failed
// operation leaves nothing half-updated.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tally-ledger/tally/internal/model"
)

// Store is the persistence collaborator: one JSON value per aggregate key.
// The store may be empty, corrupted, or carry data from an older schema;
// the ledger falls back to defaults in all of those cases. SaveAll must be
// atomic: either every key in the batch becomes durable or none does.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	SaveAll(ctx context.Context, values map[string][]byte) error
}

// Aggregate keys in the store.
const (
	keyTransactions = "transactions"
	keyAccounts     = "accounts"
	keyRecurring    = "recurring"
	keyBudget       = "budget"
)

// Ledger is the aggregate of accounts, transactions, recurring templates,
// and budget for one user. It is not safe for concurrent use; the engine is
// driven from a single control thread.
type Ledger struct {
	store        Store
	now          func() time.Time
	transactions []model.Transaction
	accounts     []model.Account
	recurring    []model.RecurringTemplate
	budget       float64
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. Tests use this to pin the current
// period.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Open loads all aggregates from the store, substituting defaults for
// absent or unreadable values: an empty log, a single "Cash" account, no
// templates, and the default budget. The default account is persisted on
// first run so its id is stable across sessions.
func Open(ctx context.Context, store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		now:    time.Now,
		budget: model.DefaultBudget,
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.loadJSON(ctx, keyTransactions, &l.transactions); err != nil {
		return nil, err
	}
	l.sortLog(l.transactions)

	if err := l.loadJSON(ctx, keyAccounts, &l.accounts); err != nil {
		return nil, err
	}
	if len(l.accounts) == 0 {
		cash := model.Account{ID: uuid.NewString(), Name: model.DefaultAccountName}
		if err := l.persistJSON(ctx, keyAccounts, []model.Account{cash}); err != nil {
			return nil, err
		}
		l.accounts = []model.Account{cash}
		slog.Info("created default account", "name", cash.Name)
	}

	if err := l.loadJSON(ctx, keyRecurring, &l.recurring); err != nil {
		return nil, err
	}

	var budget float64
	if err := l.loadJSON(ctx, keyBudget, &budget); err != nil {
		return nil, err
	}
	if model.ValidAmount(budget) {
		l.budget = budget
	}

	return l, nil
}

// loadJSON reads and decodes one aggregate. Absent keys and undecodable
// values both leave dest untouched; corruption is logged and treated as
// absence rather than failing the whole session.
func (l *Ledger) loadJSON(ctx context.Context, key string, dest any) error {
	raw, ok, err := l.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("discarding unreadable aggregate", "key", key, "error", err)
	}
	return nil
}

func (l *Ledger) persistJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := l.store.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// persistAllJSON encodes and saves several aggregates in one atomic batch.
// Operations touching more than one key use this so a failed save can never
// leave one aggregate durable without the others.
func (l *Ledger) persistAllJSON(ctx context.Context, values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		encoded[key] = raw
	}
	if err := l.store.SaveAll(ctx, encoded); err != nil {
		return fmt.Errorf("failed to persist batch: %w", err)
	}
	return nil
}

// sortLog orders the log newest first. Stable so same-instant transactions
// keep their insertion order.
func (l *Ledger) sortLog(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}

// defaultAccountID is the account used when input carries none. Open
// guarantees at least one account exists.
func (l *Ledger) defaultAccountID() string {
	if len(l.accounts) == 0 {
		return ""
	}
	return l.accounts[0].ID
}
