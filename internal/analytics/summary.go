// Package analytics derives statistics and chart series from a sequence of
// expense records. Every function is pure: it reads its input and never
// retains or mutates it.
package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

// Summary holds aggregate statistics over a record set. When Count is zero
// Highest and Lowest are the zero core.Expense, not real records.
type Summary struct {
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal
	Highest core.Expense
	Lowest  core.Expense
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category core.Category
	Total    decimal.Decimal
}

// Empty reports whether the summary was computed over no records.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summarize computes totals and extrema in a single left-to-right scan; the
// first record holding an extreme amount wins ties.
func Summarize(records []core.Expense) Summary {
	s := Summary{Total: decimal.Zero, Average: decimal.Zero}
	for i, e := range records {
		s.Total = s.Total.Add(e.Amount())
		if i == 0 || e.Amount().GreaterThan(s.Highest.Amount()) {
			s.Highest = e
		}
		if i == 0 || e.Amount().LessThan(s.Lowest.Amount()) {
			s.Lowest = e
		}
	}
	s.Count = len(records)
	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}
	return s
}

// CategoryTotals sums amounts per category, largest total first. Equal
// totals keep the order in which their categories were first seen.
func CategoryTotals(records []core.Expense) []CategoryTotal {
	var out []CategoryTotal
	index := map[core.Category]int{}
	for _, e := range records {
		i, ok := index[e.Category()]
		if !ok {
			i = len(out)
			index[e.Category()] = i
			out = append(out, CategoryTotal{Category: e.Category(), Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Amount())
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return out
}
