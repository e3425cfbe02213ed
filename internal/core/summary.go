package core

// Summary is the aggregate of a set of transactions.
type Summary struct {
	Income   Money
	Expenses Money
	Balance  Money
	Count    int
}
