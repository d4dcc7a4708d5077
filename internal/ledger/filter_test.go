package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tally-ledger/tally/internal/model"
)

func TestFilter_Matches(t *testing.T) {
	jan10 := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	transfer := model.Transaction{
		ID:          "t1",
		Kind:        model.KindTransfer,
		Category:    model.CategoryTransfer,
		Amount:      50,
		Date:        jan10,
		AccountID:   "src",
		ToAccountID: "dst",
	}
	expense := model.Transaction{
		ID:        "t2",
		Kind:      model.KindExpense,
		Category:  model.CategoryDining,
		Amount:    25,
		Date:      jan10.AddDate(0, 0, 5),
		AccountID: "src",
	}

	tests := []struct {
		name   string
		filter Filter
		txn    model.Transaction
		want   bool
	}{
		{name: "empty filter matches everything", filter: Filter{}, txn: expense, want: true},
		{
			name:   "kind match",
			filter: Filter{Kinds: []model.TransactionKind{model.KindExpense}},
			txn:    expense,
			want:   true,
		},
		{
			name:   "kind mismatch",
			filter: Filter{Kinds: []model.TransactionKind{model.KindIncome}},
			txn:    expense,
			want:   false,
		},
		{
			name:   "category match",
			filter: Filter{Categories: []model.Category{model.CategoryDining, model.CategoryOther}},
			txn:    expense,
			want:   true,
		},
		{
			name:   "account matches source",
			filter: Filter{AccountIDs: []string{"src"}},
			txn:    expense,
			want:   true,
		},
		{
			name:   "account matches transfer destination",
			filter: Filter{AccountIDs: []string{"dst"}},
			txn:    transfer,
			want:   true,
		},
		{
			name:   "account mismatch",
			filter: Filter{AccountIDs: []string{"elsewhere"}},
			txn:    transfer,
			want:   false,
		},
		{
			name:   "from bound is inclusive",
			filter: Filter{From: jan10},
			txn:    transfer,
			want:   true,
		},
		{
			name:   "to bound is inclusive",
			filter: Filter{To: jan10},
			txn:    transfer,
			want:   true,
		},
		{
			name:   "before from",
			filter: Filter{From: jan10.AddDate(0, 0, 1)},
			txn:    transfer,
			want:   false,
		},
		{
			name:   "after to",
			filter: Filter{To: jan10.AddDate(0, 0, -1)},
			txn:    transfer,
			want:   false,
		},
		{
			name: "all predicates must hold",
			filter: Filter{
				Kinds:      []model.TransactionKind{model.KindExpense},
				Categories: []model.Category{model.CategoryShopping},
			},
			txn:  expense,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.txn))
		})
	}
}
