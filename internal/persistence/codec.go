package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"saldo/internal/core"
)

// record is the stored shape of a transaction. Field names are part of the
// slot format and must not change.
type record struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Type        core.Type  `json:"type"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
}

// Encode serializes txs, in order, as a JSON array.
func Encode(txs []core.Transaction) ([]byte, error) {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = record{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount,
			Type:        tx.Type,
			Category:    string(tx.Category),
			Date:        tx.Date,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode transactions: %w", err)
	}
	return data, nil
}

// Decode parses a slot value. Any record that does not describe a valid
// transaction, or a repeated id, makes the whole value corrupt.
func Decode(data []byte) ([]core.Transaction, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []core.Transaction{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	txs := make([]core.Transaction, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		tx := core.Transaction{
			ID:          r.ID,
			Description: r.Description,
			Amount:      r.Amount,
			Type:        r.Type,
			Category:    core.Category(r.Category),
			Date:        r.Date,
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		if _, dup := seen[tx.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %q", ErrCorrupt, i, tx.ID)
		}
		seen[tx.ID] = struct{}{}
		txs = append(txs, tx)
	}
	return txs, nil
}
