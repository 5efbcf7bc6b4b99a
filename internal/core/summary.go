package core

import (
	"cmp"
	"slices"
)

// UncategorizedLabel is the bucket for transactions whose category snapshot
// is missing. Such rows are still counted, never dropped.
const UncategorizedLabel = "uncategorized"

// CategoryBreakdown is the per-category income/expense rollup consumed by
// the chart and the summary view.
type CategoryBreakdown struct {
	Label   string
	Income  int64
	Expense int64
}

// Total is the combined magnitude of the bucket, used for display ordering.
func (b CategoryBreakdown) Total() int64 {
	return b.Income + b.Expense
}

// Summary holds the ordered category buckets plus the two overall totals.
type Summary struct {
	ByCategory   []CategoryBreakdown
	IncomeTotal  int64
	ExpenseTotal int64
}

// Summarize derives the per-category rollup from a transaction collection.
// Buckets are keyed by the category snapshot's name, falling back to
// UncategorizedLabel, and ordered non-increasingly by combined total; ties
// keep first-seen order. Classification uses Transaction.IsIncome, so the
// totals and the buckets always agree and
// IncomeTotal+ExpenseTotal == sum of magnitudes.
func Summarize(transactions []Transaction) Summary {
	index := make(map[string]int)
	var buckets []CategoryBreakdown
	var s Summary

	for _, t := range transactions {
		label := t.Category.Name
		if label == "" {
			label = UncategorizedLabel
		}
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, CategoryBreakdown{Label: label})
		}
		if t.IsIncome() {
			buckets[i].Income += t.Magnitude()
			s.IncomeTotal += t.Magnitude()
		} else {
			buckets[i].Expense += t.Magnitude()
			s.ExpenseTotal += t.Magnitude()
		}
	}

	slices.SortStableFunc(buckets, func(a, b CategoryBreakdown) int {
		return cmp.Compare(b.Total(), a.Total())
	})
	s.ByCategory = buckets
	return s
}
