package ledger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/model"
	"github.com/tally-ledger/tally/internal/storage"
)

func TestImportSnapshot_Malformed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{name: "unparsable json", data: `{"bills": [`},
		{name: "bills is not a list", data: `{"bills": 5}`},
		{name: "bills missing", data: `{"budget": 3000}`},
		{name: "bills is an object", data: `{"bills": {"amount": 5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led, _ := newTestLedger(t, testNow)
			_, err := led.AddTransaction(ctx, model.Transaction{Kind: model.KindExpense, Amount: 7})
			require.NoError(t, err)

			err = led.ImportSnapshot(ctx, []byte(tt.data))
			require.ErrorIs(t, err, common.ErrMalformedSnapshot)

			// Atomic: nothing changed.
			assert.Len(t, led.Transactions(Filter{}), 1)
			assert.Equal(t, float64(model.DefaultBudget), led.Budget())
		})
	}
}

func TestImportSnapshot_DropsInvalidBills(t *testing.T) {
	ctx := context.Background()
	led, _ := newTestLedger(t, testNow)

	err := led.ImportSnapshot(ctx, []byte(`{"version": 1, "bills": [{"amount": -5, "note": "bad"}]}`))
	require.NoError(t, err)
	assert.Empty(t, led.Transactions(Filter{}), "negative-amount record is dropped")
}

func TestImportSnapshot_ReplacesLogAndBudget(t *testing.T) {
	ctx := context.Background()
	led, store := newTestLedger(t, testNow)

	_, err := led.AddTransaction(ctx, model.Transaction{Kind: model.KindExpense, Amount: 1, Note: "pre-import"})
	require.NoError(t, err)

	data := `{
		"version": 1,
		"budget": 3000,
		"bills": [
			{"id": "b1", "amount": 25, "category": "dining", "note": "面", "date": "2024-06-01T12:00:00Z"},
			{"id": "b2", "amount": 8000, "kind": "income", "category": "salary", "date": "2024-06-10T09:00:00Z"}
		]
	}`
	require.NoError(t, led.ImportSnapshot(ctx, []byte(data)))

	txns := led.Transactions(Filter{})
	require.Len(t, txns, 2)
	assert.Equal(t, "b2", txns[0].ID, "log sorted newest first")
	assert.Equal(t, "b1", txns[1].ID)
	assert.Equal(t, 3000.0, led.Budget())

	// Bills without an account land in the current default account.
	assert.Equal(t, led.Accounts()[0].ID, txns[0].AccountID)

	// Everything survived persistence.
	reopened, err := Open(ctx, store)
	require.NoError(t, err)
	assert.Len(t, reopened.Transactions(Filter{}), 2)
	assert.Equal(t, 3000.0, reopened.Budget())
}

func TestImportSnapshot_OptionalFieldFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("missing budget keeps current", func(t *testing.T) {
		led, _ := newTestLedger(t, testNow)
		require.NoError(t, led.SetBudget(ctx, 1234))
		require.NoError(t, led.ImportSnapshot(ctx, []byte(`{"bills": []}`)))
		assert.Equal(t, 1234.0, led.Budget())
	})

	t.Run("non-positive budget ignored", func(t *testing.T) {
		led, _ := newTestLedger(t, testNow)
		require.NoError(t, led.ImportSnapshot(ctx, []byte(`{"bills": [], "budget": -1}`)))
		assert.Equal(t, float64(model.DefaultBudget), led.Budget())
	})

	t.Run("missing accounts keep current set", func(t *testing.T) {
		led, _ := newTestLedger(t, testNow)
		_, err := led.AddAccount(ctx, "Savings")
		require.NoError(t, err)
		require.NoError(t, led.ImportSnapshot(ctx, []byte(`{"bills": []}`)))
		assert.Len(t, led.Accounts(), 2)
	})

	t.Run("accounts replaced when supplied", func(t *testing.T) {
		led, _ := newTestLedger(t, testNow)
		data := `{"bills": [{"amount": 9}], "accounts": [{"id": "imp-1", "name": "Imported"}]}`
		require.NoError(t, led.ImportSnapshot(ctx, []byte(data)))

		accounts := led.Accounts()
		require.Len(t, accounts, 1)
		assert.Equal(t, "Imported", accounts[0].Name)

		// The imported account is the new default for account-less bills.
		txns := led.Transactions(Filter{})
		require.Len(t, txns, 1)
		assert.Equal(t, "imp-1", txns[0].AccountID)
	})

	t.Run("recurring replaced when supplied, transfers filtered", func(t *testing.T) {
		led, _ := newTestLedger(t, testNow)
		data := `{"bills": [], "recurring": [
			{"id": "r1", "kind": "expense", "amount": 10, "category": "household", "dayOfMonth": 1},
			{"id": "r2", "kind": "transfer", "amount": 10, "dayOfMonth": 1}
		]}`
		require.NoError(t, led.ImportSnapshot(ctx, []byte(data)))

		templates := led.RecurringTemplates()
		require.Len(t, templates, 1)
		assert.Equal(t, "r1", templates[0].ID)
	})
}

func TestImportSnapshot_EmptyAccountSetSeedsDefault(t *testing.T) {
	ctx := context.Background()
	led, _ := newTestLedger(t, testNow)

	// A ledger whose account set has drained (older stored state) must not
	// break import; account-less bills get a freshly seeded default.
	led.accounts = nil
	require.NoError(t, led.ImportSnapshot(ctx, []byte(`{"bills": [{"amount": 5}]}`)))

	accounts := led.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, model.DefaultAccountName, accounts[0].Name)

	txns := led.Transactions(Filter{})
	require.Len(t, txns, 1)
	assert.Equal(t, accounts[0].ID, txns[0].AccountID)
}

func TestImportSnapshot_FailedSaveIsAtomic(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time { return testNow }

	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	led, err := Open(ctx, store, WithClock(clock))
	require.NoError(t, err)
	_, err = led.AddTransaction(ctx, model.Transaction{Kind: model.KindExpense, Amount: 7, Note: "pre-import"})
	require.NoError(t, err)

	store.failBatch = true
	err = led.ImportSnapshot(ctx, []byte(`{"bills": [{"amount": 25}], "budget": 3000}`))
	require.Error(t, err)

	// Neither the in-memory state nor the stored state moved.
	assert.Equal(t, "pre-import", led.Transactions(Filter{})[0].Note)
	assert.Equal(t, float64(model.DefaultBudget), led.Budget())

	store.failBatch = false
	reopened, err := Open(ctx, store, WithClock(clock))
	require.NoError(t, err)
	require.Len(t, reopened.Transactions(Filter{}), 1)
	assert.Equal(t, "pre-import", reopened.Transactions(Filter{})[0].Note)
	assert.Equal(t, float64(model.DefaultBudget), reopened.Budget())
}

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()
	led, _ := newTestLedger(t, testNow)
	cash := led.Accounts()[0]

	_, err := led.AddTransaction(ctx, model.Transaction{Kind: model.KindExpense, Amount: 25, Category: model.CategoryDining, Date: testNow})
	require.NoError(t, err)
	_, err = led.AddTransaction(ctx, model.Transaction{Kind: model.KindIncome, Amount: 8000, Category: model.CategorySalary, Date: testNow})
	require.NoError(t, err)
	_, err = led.AddRecurringTemplate(ctx, model.RecurringTemplate{Kind: model.KindExpense, Amount: 10, DayOfMonth: 1})
	require.NoError(t, err)

	t.Run("unfiltered export carries everything", func(t *testing.T) {
		snap := led.ExportSnapshot(Filter{})
		assert.Equal(t, model.SnapshotVersion, snap.Version)
		assert.Len(t, snap.Bills, 2)
		assert.Len(t, snap.Accounts, 1)
		assert.Len(t, snap.Recurring, 1)
		assert.Equal(t, led.Budget(), snap.Budget)
	})

	t.Run("filter narrows bills only", func(t *testing.T) {
		snap := led.ExportSnapshot(Filter{Kinds: []model.TransactionKind{model.KindIncome}})
		require.Len(t, snap.Bills, 1)
		assert.Equal(t, model.KindIncome, snap.Bills[0].Kind)
		assert.Len(t, snap.Accounts, 1, "accounts are always exported in full")
	})

	t.Run("export does not mutate", func(t *testing.T) {
		before := led.Transactions(Filter{})
		_ = led.ExportSnapshot(Filter{Categories: []model.Category{model.CategoryDining}})
		assert.Equal(t, before, led.Transactions(Filter{}))
	})

	t.Run("export/import round trip", func(t *testing.T) {
		snap := led.ExportSnapshot(Filter{})
		raw, err := json.Marshal(snap)
		require.NoError(t, err)

		fresh, _ := newTestLedger(t, testNow)
		require.NoError(t, fresh.ImportSnapshot(ctx, raw))

		assert.Len(t, fresh.Transactions(Filter{}), 2)
		require.Len(t, fresh.Accounts(), 1)
		assert.Equal(t, cash.ID, fresh.Accounts()[0].ID)
		assert.Len(t, fresh.RecurringTemplates(), 1)
	})
}
