// Package persistence reads and writes the transaction list to a durable slot.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"saldo/internal/core"
	"saldo/internal/log"
	"saldo/internal/slot"
)

// DefaultKey is the slot key holding the transaction list.
const DefaultKey = "transactions"

var (
	// ErrCorrupt marks a stored value that cannot be read back as transactions.
	ErrCorrupt = errors.New("persisted data is corrupt")

	// ErrUnavailable marks a slot that could not be read or written.
	ErrUnavailable = errors.New("persistence unavailable")
)

// Adapter loads and saves the full transaction sequence under one slot key.
type Adapter struct {
	slot   slot.Slot
	key    string
	logger *log.Logger
}

// NewAdapter returns an adapter on s using key, or DefaultKey when key is empty.
func NewAdapter(s slot.Slot, key string, logger *log.Logger) (*Adapter, error) {
	if s == nil {
		return nil, errors.New("slot is nil")
	}
	if key == "" {
		key = DefaultKey
	}
	if err := slot.ValidateKey(key); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		slot:   s,
		key:    key,
		logger: logger.WithComponent(log.ComponentPersistence),
	}, nil
}

// Key returns the slot key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored sequence. A missing slot is an empty sequence with no
// error; a corrupt or unreadable slot is an empty sequence with an error
// wrapping ErrCorrupt or ErrUnavailable.
func (a *Adapter) Load(ctx context.Context) ([]core.Transaction, error) {
	data, err := a.slot.Read(ctx, a.key)
	if errors.Is(err, slot.ErrNotFound) {
		a.logger.DebugContext(ctx, "No persisted transactions", log.FieldSlotKey, a.key)
		return []core.Transaction{}, nil
	}
	if err != nil {
		return []core.Transaction{}, fmt.Errorf("%w: read slot %s: %v", ErrUnavailable, a.key, err)
	}

	txs, err := Decode(data)
	if err != nil {
		return []core.Transaction{}, fmt.Errorf("decode slot %s: %w", a.key, err)
	}

	a.logger.DebugContext(ctx, "Loaded transactions", log.FieldSlotKey, a.key, log.FieldCount, len(txs))
	return txs, nil
}

// Save overwrites the slot with txs.
func (a *Adapter) Save(ctx context.Context, txs []core.Transaction) error {
	data, err := Encode(txs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := a.slot.Write(ctx, a.key, data); err != nil {
		return fmt.Errorf("%w: write slot %s: %v", ErrUnavailable, a.key, err)
	}
	a.logger.DebugContext(ctx, "Saved transactions", log.FieldSlotKey, a.key, log.FieldCount, len(txs))
	return nil
}
