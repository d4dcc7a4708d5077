package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-ledger/tally/internal/model"
)

func TestNormalize_DropsInvalidRecords(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		record map[string]any
		name   string
	}{
		{name: "missing amount", record: map[string]any{"note": "no amount"}},
		{name: "string amount", record: map[string]any{"amount": "25"}},
		{name: "negative amount", record: map[string]any{"amount": -5.0}},
		{name: "zero amount", record: map[string]any{"amount": 0.0}},
		{name: "amount rounding to zero", record: map[string]any{"amount": 0.001}},
		{
			name: "transfer collapsing to self-reference",
			record: map[string]any{
				"amount": 100.0,
				"kind":   "transfer",
			},
		},
		{
			name: "transfer with identical endpoints",
			record: map[string]any{
				"amount":      100.0,
				"kind":        "transfer",
				"accountId":   "acc-1",
				"toAccountId": "acc-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]map[string]any{tt.record}, "default-acc", now)
			assert.Empty(t, got)
		})
	}
}

func TestNormalize_Coercions(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("unknown kind defaults to expense", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "kind": "refund"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, model.KindExpense, got[0].Kind)
		assert.Equal(t, model.CategoryOther, got[0].Category)
	})

	t.Run("income kind kept with family default category", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "kind": "income"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, model.KindIncome, got[0].Kind)
		assert.Equal(t, model.CategoryOtherIncome, got[0].Category)
	})

	t.Run("category from wrong family falls back", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "kind": "income", "category": "dining"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, model.CategoryOtherIncome, got[0].Category)
	})

	t.Run("valid matching category kept", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "category": "transport"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, model.CategoryTransport, got[0].Category)
	})

	t.Run("unknown category falls back", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "category": "groceries"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, model.CategoryOther, got[0].Category)
	})

	t.Run("existing id preserved and missing id generated", func(t *testing.T) {
		got := Normalize([]map[string]any{
			{"amount": 10.0, "id": "keep-me"},
			{"amount": 20.0},
		}, "acc", now)
		require.Len(t, got, 2)
		assert.Equal(t, "keep-me", got[0].ID)
		assert.NotEmpty(t, got[1].ID)
		assert.NotEqual(t, got[0].ID, got[1].ID)
	})

	t.Run("empty account gets default", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0}}, "default-acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, "default-acc", got[0].AccountID)
	})

	t.Run("transfer destination defaults when absent", func(t *testing.T) {
		got := Normalize([]map[string]any{
			{"amount": 10.0, "kind": "transfer", "accountId": "src"},
		}, "default-acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, "src", got[0].AccountID)
		assert.Equal(t, "default-acc", got[0].ToAccountID)
		assert.Equal(t, model.CategoryTransfer, got[0].Category)
	})

	t.Run("amount rounded to two decimals", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.567}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, 10.57, got[0].Amount)
	})

	t.Run("unparsable date defaults to now", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "date": "yesterday"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, now, got[0].Date)
	})

	t.Run("RFC3339 date parsed", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": 10.0, "date": "2023-11-05T08:00:00Z"}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, time.Date(2023, 11, 5, 8, 0, 0, 0, time.UTC), got[0].Date)
	})

	t.Run("json.Number amount accepted", func(t *testing.T) {
		got := Normalize([]map[string]any{{"amount": json.Number("42.5")}}, "acc", now)
		require.Len(t, got, 1)
		assert.Equal(t, 42.5, got[0].Amount)
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	records := []map[string]any{
		{"amount": 25.0, "kind": "expense", "category": "dining", "note": "noodles", "date": "2024-04-30T12:00:00Z", "accountId": "a1", "id": "t1"},
		{"amount": 8000.0, "kind": "income", "category": "salary", "date": "2024-04-01T09:00:00Z", "accountId": "a1", "id": "t2"},
		{"amount": 500.0, "kind": "transfer", "accountId": "a1", "toAccountId": "a2", "date": "2024-04-15T12:00:00Z", "id": "t3"},
		{"amount": -3.0, "id": "bad"},
	}

	once := Normalize(records, "a1", now)
	require.Len(t, once, 3)

	// Re-normalize the output of the first pass.
	raw, err := json.Marshal(once)
	require.NoError(t, err)
	var roundTripped []map[string]any
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	twice := Normalize(roundTripped, "a1", now)
	assert.Equal(t, once, twice)
}

func TestNormalize_OrderPreservedAndUnsorted(t *testing.T) {
	now := time.Now()
	records := []map[string]any{
		{"amount": 1.0, "id": "first", "date": "2020-01-01T00:00:00Z"},
		{"amount": 2.0, "id": "second", "date": "2024-01-01T00:00:00Z"},
	}

	got := Normalize(records, "acc", now)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}
