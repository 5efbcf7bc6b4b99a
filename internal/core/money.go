// Package core holds the shared domain types of the household ledger:
// transactions, categories, drafts, and the category rollup derived from
// them. Everything here is pure; network and state live elsewhere.
package core

import "strconv"

// FormatYen renders a signed yen amount with digit grouping, e.g. -1234567
// becomes "-¥1,234,567". Yen has no minor unit, so there is no fraction.
func FormatYen(amount int64) string {
	sign := "+"
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var grouped []byte
	for i, r := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, r)
	}
	return sign + "¥" + string(grouped)
}
