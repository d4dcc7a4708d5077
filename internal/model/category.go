package model

// Category is an enumerated tag attached to every transaction. Categories
// form two disjoint families, one per non-transfer kind, plus a sentinel
// used only by transfers. A transaction's category must belong to the
// family of its kind.
type Category string

// Expense categories.
const (
	CategoryDining        Category = "dining"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHousehold     Category = "household"
	CategoryOther         Category = "other"
)

// Income categories.
const (
	CategorySalary      Category = "salary"
	CategoryBonus       Category = "bonus"
	CategoryInvestment  Category = "investment"
	CategoryOtherIncome Category = "other-income"
)

// CategoryTransfer is the sentinel category carried by transfer transactions.
const CategoryTransfer Category = "transfer"

// ExpenseCategories returns the expense family in its fixed priority order.
// The order matters to the text parser: the first category whose keyword
// set matches wins.
func ExpenseCategories() []Category {
	return []Category{
		CategoryDining,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHousehold,
		CategoryOther,
	}
}

// IncomeCategories returns the income family.
func IncomeCategories() []Category {
	return []Category{
		CategorySalary,
		CategoryBonus,
		CategoryInvestment,
		CategoryOtherIncome,
	}
}

// ParseCategory returns the category matching s, or false when s is not a
// member of the full category set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	switch c {
	case CategoryDining, CategoryTransport, CategoryShopping,
		CategoryEntertainment, CategoryHousehold, CategoryOther,
		CategorySalary, CategoryBonus, CategoryInvestment, CategoryOtherIncome,
		CategoryTransfer:
		return c, true
	}
	return "", false
}

// MatchesKind reports whether the category belongs to the family consistent
// with the given transaction kind.
func (c Category) MatchesKind(kind TransactionKind) bool {
	switch kind {
	case KindExpense:
		switch c {
		case CategoryDining, CategoryTransport, CategoryShopping,
			CategoryEntertainment, CategoryHousehold, CategoryOther:
			return true
		}
	case KindIncome:
		switch c {
		case CategorySalary, CategoryBonus, CategoryInvestment, CategoryOtherIncome:
			return true
		}
	case KindTransfer:
		return c == CategoryTransfer
	}
	return false
}

// DefaultCategory returns the fallback category for a kind, used when input
// carries no category or one from the wrong family.
func DefaultCategory(kind TransactionKind) Category {
	switch kind {
	case KindIncome:
		return CategoryOtherIncome
	case KindTransfer:
		return CategoryTransfer
	default:
		return CategoryOther
	}
}
