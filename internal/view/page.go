package view

import "saldo/internal/core"

// Row is one formatted list entry.
type Row struct {
	ID          string
	Description string
	Category    string
	Type        core.Type
	Amount      string // signed, e.g. "-€ 4,50"
	Date        string
}

// IsIncome is used by templates to pick the row style.
func (r Row) IsIncome() bool {
	return r.Type == core.Income
}

// Stats is the formatted summary.
type Stats struct {
	Income   string
	Expenses string
	Balance  string
	Negative bool
	Count    int
}

// Tab is a filter button.
type Tab struct {
	Filter Filter
	Label  string
	Active bool
}

// Page is everything the main screen renders. Rows follow the active
// filter while Stats always cover the whole snapshot.
type Page struct {
	Rows       []Row
	Stats      Stats
	Summary    core.Summary
	Filter     Filter
	Tabs       []Tab
	Types      []core.Type
	Categories map[core.Type][]core.Category
	Symbol     string

	// PersistenceDown is set while changes only live in memory.
	PersistenceDown bool
}

var tabLabels = map[Filter]string{
	All:     "All",
	Income:  "Income",
	Expense: "Expenses",
}

// BuildPage derives the page model from a snapshot.
func BuildPage(snapshot []core.Transaction, f Filter, fm *Formatter) Page {
	if f == "" {
		f = All
	}
	sum := Aggregate(snapshot)

	visible := Apply(snapshot, f)
	rows := make([]Row, 0, len(visible))
	for _, tx := range visible {
		rows = append(rows, Row{
			ID:          tx.ID,
			Description: tx.Description,
			Category:    tx.Category.String(),
			Type:        tx.Type,
			Amount:      fm.Signed(tx),
			Date:        fm.Date(tx.Date),
		})
	}

	tabs := make([]Tab, 0, len(Filters()))
	for _, v := range Filters() {
		tabs = append(tabs, Tab{Filter: v, Label: tabLabels[v], Active: v == f})
	}

	cats := make(map[core.Type][]core.Category, len(core.Types()))
	for _, t := range core.Types() {
		cats[t] = core.CategoriesFor(t)
	}

	return Page{
		Rows: rows,
		Stats: Stats{
			Income:   fm.Amount(sum.Income),
			Expenses: fm.Amount(sum.Expenses),
			Balance:  fm.Amount(sum.Balance),
			Negative: sum.Balance.Cents < 0,
			Count:    sum.Count,
		},
		Summary:    sum,
		Filter:     f,
		Tabs:       tabs,
		Types:      core.Types(),
		Categories: cats,
		Symbol:     fm.Symbol(),
	}
}
