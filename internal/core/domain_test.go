package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCategoriesFor(t *testing.T) {
	if got := CategoriesFor(Income); len(got) != 3 || got[0] != Salary {
		t.Fatalf("unexpected income categories: %v", got)
	}
	if got := CategoriesFor(Expense); len(got) != 5 || got[4] != Bills {
		t.Fatalf("unexpected expense categories: %v", got)
	}
	if got := CategoriesFor(Type("transfer")); got != nil {
		t.Fatalf("expected nil for unknown type, got %v", got)
	}

	// Callers must not be able to alter the shared sets.
	cats := CategoriesFor(Income)
	cats[0] = "Hacked"
	if CategoriesFor(Income)[0] != Salary {
		t.Fatalf("category set was mutated through returned slice")
	}
}

func TestParseType(t *testing.T) {
	for _, in := range []string{"income", " Income ", "EXPENSE"} {
		if _, err := ParseType(in); err != nil {
			t.Fatalf("%q expected ok, got %v", in, err)
		}
	}
	if _, err := ParseType("transfer"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestNewTransactionValidate(t *testing.T) {
	good := NewTransaction{Description: "Coffee", Amount: "4.50", Type: Expense, Category: Food}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		in   NewTransaction
		want error
	}{
		{"empty description", NewTransaction{Description: "  ", Amount: "1", Type: Expense, Category: Food}, ErrEmptyDescription},
		{"zero amount", NewTransaction{Description: "a", Amount: "0", Type: Expense, Category: Food}, ErrInvalidAmount},
		{"bad amount", NewTransaction{Description: "a", Amount: "ten", Type: Expense, Category: Food}, ErrInvalidAmount},
		{"bad type", NewTransaction{Description: "a", Amount: "1", Type: "gift", Category: Food}, ErrInvalidType},
		{"mismatched category", NewTransaction{Description: "a", Amount: "1", Type: Income, Category: Food}, ErrCategoryMismatch},
		{"empty category", NewTransaction{Description: "a", Amount: "1", Type: Expense}, ErrCategoryMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestNewTransactionLongDescription(t *testing.T) {
	cases := []struct {
		name string
		desc string
	}{
		{"ascii", strings.Repeat("a", 201)},
		{"multibyte", strings.Repeat("é", 500)},
		{"very long", strings.Repeat("rent share ", 1000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc, _, err := NewTransaction{Description: tc.desc, Amount: "1", Type: Expense, Category: Bills}.Normalize()
			if err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if desc != strings.TrimSpace(tc.desc) {
				t.Fatalf("description changed: got %d bytes, want %d", len(desc), len(strings.TrimSpace(tc.desc)))
			}
		})
	}
}

func TestNewTransactionNormalize(t *testing.T) {
	desc, amount, err := NewTransaction{Description: "  Rent share ", Amount: "12,5", Type: Expense, Category: Bills}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc != "Rent share" || amount.Cents != 1250 {
		t.Fatalf("unexpected normalize result: %q %d", desc, amount.Cents)
	}
}

func TestTransactionValidateAndEqual(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tx := Transaction{ID: "a", Description: "Pay", Amount: Money{Cents: 100}, Type: Income, Category: Salary, Date: now}
	if err := tx.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Description: "Pay", Amount: Money{Cents: 100}, Type: Income, Category: Salary, Date: now},
		{ID: "a", Amount: Money{Cents: 100}, Type: Income, Category: Salary, Date: now},
		{ID: "a", Description: "Pay", Amount: Money{Cents: -1}, Type: Income, Category: Salary, Date: now},
		{ID: "a", Description: "Pay", Amount: Money{Cents: 100}, Type: Income, Category: Food, Date: now},
		{ID: "a", Description: "Pay", Amount: Money{Cents: 100}, Type: Income, Category: Salary},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}

	other := tx
	other.Date = now.In(time.FixedZone("CET", 3600))
	if !tx.Equal(other) {
		t.Fatalf("same instant in another zone should be equal")
	}
	other.Amount = Money{Cents: 101}
	if tx.Equal(other) {
		t.Fatalf("different amounts should not be equal")
	}
}
