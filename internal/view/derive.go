// Package view holds the pure derivations computed from a store snapshot:
// filtering for the displayed list and aggregation for the statistics.
package view

import (
	"fmt"
	"strings"

	"saldo/internal/core"
)

const (
	All     Filter = "all"
	Income  Filter = Filter(core.Income)
	Expense Filter = Filter(core.Expense)
)

// Filter selects which transactions the list shows.
type Filter string

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{All, Income, Expense}
}

// ParseFilter converts a query value to a Filter; empty means All.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return All, nil
	case All, Income, Expense:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

func (f Filter) String() string {
	return string(f)
}

// Apply returns the transactions matching f, keeping their relative order.
// All returns txs itself.
func Apply(txs []core.Transaction, f Filter) []core.Transaction {
	if f == All || f == "" {
		return txs
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if Filter(tx.Type) == f {
			out = append(out, tx)
		}
	}
	return out
}

// Aggregate sums income and expenses over txs. Callers pass the whole
// snapshot, never a filtered one, so the statistics ignore the active filter.
func Aggregate(txs []core.Transaction) core.Summary {
	var sum core.Summary
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			sum.Income = sum.Income.Add(tx.Amount)
		case core.Expense:
			sum.Expenses = sum.Expenses.Add(tx.Amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expenses)
	sum.Count = len(txs)
	return sum
}
