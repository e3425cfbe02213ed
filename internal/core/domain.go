package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

const (
	Salary     Category = "Salary"
	Freelance  Category = "Freelance"
	Investment Category = "Investment"

	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Entertainment Category = "Entertainment"
	Bills         Category = "Bills"
)

type (
	// Type tells income and expense apart.
	Type string

	// Category is a label whose allowed values depend on the Type.
	Category string

	// Transaction is a single recorded income or expense event.
	// It is never modified after creation.
	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Type        Type
		Category    Category
		Date        time.Time
	}

	// NewTransaction carries user input for creating a Transaction.
	// Amount is kept as typed and parsed by ParseAmount.
	NewTransaction struct {
		Description string
		Amount      string
		Type        Type
		Category    Category
	}
)

var (
	// ErrValidation is wrapped by every input validation error.
	ErrValidation = errors.New("validation failed")

	ErrEmptyDescription = fmt.Errorf("%w: empty description", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidType      = fmt.Errorf("%w: invalid transaction type", ErrValidation)
	ErrCategoryMismatch = fmt.Errorf("%w: category does not belong to type", ErrValidation)
	ErrEmptyID          = fmt.Errorf("%w: empty id", ErrValidation)
	ErrZeroDate         = fmt.Errorf("%w: zero date", ErrValidation)
)

var categories = map[Type][]Category{
	Income:  {Salary, Freelance, Investment},
	Expense: {Food, Transport, Shopping, Entertainment, Bills},
}

// Types returns the transaction types in display order.
func Types() []Type {
	return []Type{Income, Expense}
}

// ParseType converts user input to a Type, ignoring case and surrounding space.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// IsValid reports whether t is income or expense.
func (t Type) IsValid() bool {
	_, ok := categories[t]
	return ok
}

func (t Type) String() string {
	return string(t)
}

// CategoriesFor returns the categories allowed for t, or nil for an unknown type.
func CategoriesFor(t Type) []Category {
	cats, ok := categories[t]
	if !ok {
		return nil
	}
	return append([]Category(nil), cats...)
}

// Allows reports whether c belongs to the category set of t.
func (t Type) Allows(c Category) bool {
	for _, v := range categories[t] {
		if v == c {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Validate checks the input and returns the first violated rule.
func (n NewTransaction) Validate() error {
	if err := validateDescription(n.Description); err != nil {
		return err
	}
	if _, err := ParseAmount(n.Amount); err != nil {
		return err
	}
	return validatePair(n.Type, n.Category)
}

// Normalize returns the trimmed description and the parsed amount.
func (n NewTransaction) Normalize() (string, Money, error) {
	if err := n.Validate(); err != nil {
		return "", Money{}, err
	}
	amount, _ := ParseAmount(n.Amount)
	return strings.TrimSpace(n.Description), amount, nil
}

// Validate checks a stored transaction, for example one decoded from a slot.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := validatePair(t.Type, t.Category); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Equal compares two transactions field by field; dates compare by instant.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Description == o.Description &&
		t.Amount == o.Amount &&
		t.Type == o.Type &&
		t.Category == o.Category &&
		t.Date.Equal(o.Date)
}

func validateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func validatePair(t Type, c Category) error {
	if !t.IsValid() {
		return ErrInvalidType
	}
	if !t.Allows(c) {
		return ErrCategoryMismatch
	}
	return nil
}
