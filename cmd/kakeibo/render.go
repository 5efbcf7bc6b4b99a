package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"kakeibo/internal/core"
)

const barWidth = 32

// renderSummary prints the category rollup as horizontal bars plus the two
// overall totals, mirroring the dashboard chart.
func renderSummary(w io.Writer, s core.Summary) {
	if len(s.ByCategory) == 0 {
		fmt.Fprintln(w, "no transactions yet")
		return
	}

	max := s.ByCategory[0].Total()
	labelWidth := 0
	for _, b := range s.ByCategory {
		if n := utf8.RuneCountInString(b.Label); n > labelWidth {
			labelWidth = n
		}
	}

	for _, b := range s.ByCategory {
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(b.Label))
		fmt.Fprintf(w, "%s%s  %s %s\n", b.Label, pad, bar(b.Total(), max), core.FormatYen(b.Total()))
		if b.Income > 0 && b.Expense > 0 {
			fmt.Fprintf(w, "%s  (income %s, expense %s)\n",
				strings.Repeat(" ", labelWidth), core.FormatYen(b.Income), core.FormatYen(-b.Expense))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "income total:  %s\n", core.FormatYen(s.IncomeTotal))
	fmt.Fprintf(w, "expense total: %s\n", core.FormatYen(-s.ExpenseTotal))
}

func bar(value, max int64) string {
	if max <= 0 {
		return ""
	}
	n := int(value * barWidth / max)
	if n == 0 && value > 0 {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

func renderTransactions(w io.Writer, transactions []core.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(w, "no transactions yet")
		return
	}
	for _, t := range transactions {
		label := t.Category.Name
		if label == "" {
			label = core.UncategorizedLabel
		}
		fmt.Fprintf(w, "%4d  %s  %-7s  %-8s %12s  %s\n",
			t.ID, t.Date.Format(core.DateLayout), t.Type, label, core.FormatYen(t.Amount), t.Memo)
	}
}
