// Package parse turns free-form entry text into transaction fields.
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/model"
)

// Result holds the fields extracted from one line of entry text. The
// category is a best-effort keyword guess over the expense family; callers
// must let the user override it.
type Result struct {
	Date     time.Time
	Category model.Category
	Note     string
	Amount   float64
}

// amountPattern matches forms like "25", "25.5", "￥25" and "25元". The
// fallback picks up amounts introduced by an explicit amount/price word.
var (
	amountPattern   = regexp.MustCompile(`([￥¥]?\s*\d+(?:[.,]\d{1,2})?)(?:\s*元)?`)
	fallbackPattern = regexp.MustCompile(`(?:金额|价|付)\s*(\d+(?:[.,]\d{1,2})?)`)
	numeralCleaner  = regexp.MustCompile(`[￥¥\s]`)
)

// categoryKeywords maps each expense category to the tokens that select it.
// Evaluated in the fixed order of model.ExpenseCategories; keywords are
// matched against lowercased text, so they must be lowercase themselves.
var categoryKeywords = map[model.Category][]string{
	model.CategoryDining:        {"吃", "餐", "饭", "面", "早餐", "午餐", "晚餐", "奶茶", "咖啡"},
	model.CategoryTransport:     {"公交", "地铁", "打车", "滴滴", "车票", "出行", "出租"},
	model.CategoryShopping:      {"买", "购物", "京东", "淘宝", "拼多多", "衣服", "鞋"},
	model.CategoryEntertainment: {"电影", "游戏", "会员", "ktv", "娱乐", "音乐"},
	model.CategoryHousehold:     {"家", "水电", "燃气", "超市", "日用品", "物业", "维修"},
	model.CategoryOther:         {"其他", "杂项", "未知"},
}

// Parse extracts an amount and infers a category from free text. It is
// side-effect free; now supplies the transaction date. Returns
// common.ErrNoAmount when the text contains no usable amount.
func Parse(text string, now time.Time) (Result, error) {
	amount, ok := extractAmount(text)
	if !ok {
		return Result{}, common.ErrNoAmount
	}
	return Result{
		Amount:   amount,
		Category: detectCategory(text),
		Note:     strings.TrimSpace(text),
		Date:     now,
	}, nil
}

func extractAmount(text string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		m = fallbackPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}

	numeral := numeralCleaner.ReplaceAllString(m[1], "")
	numeral = strings.ReplaceAll(numeral, ",", ".")
	n, err := strconv.ParseFloat(numeral, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return model.RoundAmount(n), true
}

// detectCategory scans the lowercased text for category keywords in the
// family's fixed priority order; the first hit wins.
func detectCategory(text string) model.Category {
	t := strings.ToLower(text)
	for _, cat := range model.ExpenseCategories() {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(t, kw) {
				return cat
			}
		}
	}
	return model.CategoryOther
}
