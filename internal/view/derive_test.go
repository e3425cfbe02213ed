package view

import (
	"testing"
	"time"

	"saldo/internal/core"
)

func tx(id string, t core.Type, c core.Category, cents int64) core.Transaction {
	return core.Transaction{
		ID:          id,
		Description: id,
		Amount:      core.Money{Cents: cents},
		Type:        t,
		Category:    c,
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func snapshot() []core.Transaction {
	return []core.Transaction{
		tx("e2", core.Expense, core.Bills, 20000),
		tx("i2", core.Income, core.Freelance, 5050),
		tx("e1", core.Expense, core.Food, 450),
		tx("i1", core.Income, core.Salary, 100000),
	}
}

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"", All, true},
		{"all", All, true},
		{" Income ", Income, true},
		{"EXPENSE", Expense, true},
		{"transfer", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestApplyAllIsIdentity(t *testing.T) {
	txs := snapshot()
	got := Apply(txs, All)
	if len(got) != len(txs) {
		t.Fatalf("expected %d, got %d", len(txs), len(got))
	}
	for i := range txs {
		if got[i].ID != txs[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
	if len(Apply(nil, All)) != 0 {
		t.Fatalf("expected empty result for empty snapshot")
	}
}

func TestApplyPartitions(t *testing.T) {
	txs := snapshot()
	income := Apply(txs, Income)
	expense := Apply(txs, Expense)

	if len(income)+len(expense) != len(txs) {
		t.Fatalf("filters do not cover the snapshot: %d + %d != %d", len(income), len(expense), len(txs))
	}
	seen := map[string]int{}
	for _, tx := range income {
		if tx.Type != core.Income {
			t.Fatalf("income filter returned %s", tx.Type)
		}
		seen[tx.ID]++
	}
	for _, tx := range expense {
		if tx.Type != core.Expense {
			t.Fatalf("expense filter returned %s", tx.Type)
		}
		seen[tx.ID]++
	}
	for _, tx := range txs {
		if seen[tx.ID] != 1 {
			t.Fatalf("%s appears %d times across filters", tx.ID, seen[tx.ID])
		}
	}

	// Relative order is preserved
	if income[0].ID != "i2" || income[1].ID != "i1" {
		t.Fatalf("unexpected income order: %v, %v", income[0].ID, income[1].ID)
	}
}

func TestAggregate(t *testing.T) {
	sum := Aggregate(snapshot())
	if sum.Income.Cents != 105050 || sum.Expenses.Cents != 20450 {
		t.Fatalf("unexpected sums: %+v", sum)
	}
	if sum.Balance.Cents != sum.Income.Cents-sum.Expenses.Cents {
		t.Fatalf("balance != income - expenses: %+v", sum)
	}
	if sum.Count != 4 {
		t.Fatalf("unexpected count %d", sum.Count)
	}

	empty := Aggregate(nil)
	if empty.Income.Cents != 0 || empty.Expenses.Cents != 0 || empty.Balance.Cents != 0 {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestScenarioCoffee(t *testing.T) {
	sum := Aggregate([]core.Transaction{tx("c", core.Expense, core.Food, 450)})
	if sum.Income.Cents != 0 || sum.Expenses.Cents != 450 || sum.Balance.Cents != -450 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestScenarioSalaryAndBills(t *testing.T) {
	txs := []core.Transaction{
		tx("bills", core.Expense, core.Bills, 20000),
		tx("salary", core.Income, core.Salary, 100000),
	}
	sum := Aggregate(txs)
	if sum.Income.Cents != 100000 || sum.Expenses.Cents != 20000 || sum.Balance.Cents != 80000 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	income := Apply(txs, Income)
	if len(income) != 1 || income[0].ID != "salary" {
		t.Fatalf("expected only the salary entry, got %+v", income)
	}
}
