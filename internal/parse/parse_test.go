package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/model"
)

func TestParse_AmountExtraction(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		text       string
		wantAmount float64
		wantErr    bool
	}{
		{
			name:       "plain integer with unit marker",
			text:       "中午吃面25元",
			wantAmount: 25,
		},
		{
			name:       "decimal amount",
			text:       "打车 18.5",
			wantAmount: 18.5,
		},
		{
			name:       "currency glyph",
			text:       "￥12.5 咖啡",
			wantAmount: 12.5,
		},
		{
			name:       "currency glyph with space",
			text:       "¥ 30 超市",
			wantAmount: 30,
		},
		{
			name:       "comma decimal separator",
			text:       "奶茶 9,5",
			wantAmount: 9.5,
		},
		{
			name:       "price word prefix",
			text:       "水电费 金额 120",
			wantAmount: 120,
		},
		{
			name:       "only two decimal digits captured",
			text:       "会员 9.999",
			wantAmount: 9.99,
		},
		{
			name:       "first numeric match wins",
			text:       "2人 晚餐 100元",
			wantAmount: 2,
		},
		{
			name:    "no digits",
			text:    "请客吃饭",
			wantErr: true,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.text, now)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrNoAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, result.Amount)
			assert.Equal(t, now, result.Date)
		})
	}
}

func TestParse_CategoryInference(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		text string
		want model.Category
	}{
		{name: "dining keyword", text: "中午吃面25元", want: model.CategoryDining},
		{name: "coffee is dining", text: "咖啡 28", want: model.CategoryDining},
		{name: "transport beats household in priority order", text: "打车回家 18", want: model.CategoryTransport},
		{name: "shopping keyword", text: "淘宝 衣服 200", want: model.CategoryShopping},
		{name: "entertainment keyword", text: "电影票 45", want: model.CategoryEntertainment},
		{name: "ktv case-insensitive", text: "KTV 300", want: model.CategoryEntertainment},
		{name: "household keyword", text: "交水电 80", want: model.CategoryHousehold},
		{name: "no keyword falls back to other", text: "随手记 100", want: model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.text, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Category)
		})
	}
}

func TestParse_PriorityOrder(t *testing.T) {
	// 吃 (dining) and 买 (shopping) both appear; dining comes first in the
	// fixed priority order.
	result, err := Parse("买菜吃饭 60", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDining, result.Category)
}

func TestParse_Deterministic(t *testing.T) {
	now := time.Now()
	first, err := Parse("地铁通勤 4.5", now)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Parse("地铁通勤 4.5", now)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestParse_NoteIsTrimmedInput(t *testing.T) {
	result, err := Parse("  早餐 8元  ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "早餐 8元", result.Note)
}
