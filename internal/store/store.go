// Package store owns the authoritative, newest-first list of transactions.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"saldo/internal/core"
	"saldo/internal/log"
	"saldo/internal/persistence"
)

// maxIDAttempts bounds regeneration when an injected generator collides.
const maxIDAttempts = 8

var ErrIDExhausted = errors.New("could not generate a unique transaction id")

// Persister is the durable side of the store.
type Persister interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txs []core.Transaction) error
}

// Options customise a Store. Zero values select the defaults.
type Options struct {
	Now    func() time.Time
	NewID  func() string
	Logger *log.Logger
}

// Store is the only mutator of the transaction list. Every successful
// mutation is written through to the Persister before the call returns.
type Store struct {
	mu         sync.Mutex
	items      []core.Transaction // newest first
	persister  Persister
	now        func() time.Time
	newID      func() string
	logger     *log.Logger
	persistErr error
}

// Open builds a store from whatever the persister holds. It never fails:
// corrupt data starts an empty store, and an unreadable slot starts an empty
// store in memory-only mode until the next successful save.
func Open(ctx context.Context, p Persister, opts Options) *Store {
	s := &Store{
		persister: p,
		now:       opts.Now,
		newID:     opts.NewID,
		logger:    opts.Logger,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.WithComponent(log.ComponentStore)

	s.items = []core.Transaction{}
	if p == nil {
		s.logger.WarnContext(ctx, "No persister configured, running in memory only")
		return s
	}

	txs, err := p.Load(ctx)
	switch {
	case err == nil:
		s.items = txs
		s.logger.InfoContext(ctx, "Transactions loaded", log.FieldCount, len(txs))
	case errors.Is(err, persistence.ErrCorrupt):
		s.logger.WarnContext(ctx, "Persisted transactions are corrupt, starting empty",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypeCorruptData).WithOperation(log.OpLoad).ToSlice()...)
	default:
		s.persistErr = err
		s.logger.ErrorContext(ctx, "Persistence unavailable, starting empty in memory-only mode",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypePersistence).WithOperation(log.OpLoad).ToSlice()...)
	}
	if s.items == nil {
		s.items = []core.Transaction{}
	}
	return s
}

// Add validates in, prepends a new transaction and saves. A validation error
// leaves the store untouched. A save error still keeps the transaction, which
// is returned along with an error wrapping persistence.ErrUnavailable.
func (s *Store) Add(ctx context.Context, in core.NewTransaction) (core.Transaction, error) {
	desc, amount, err := in.Normalize()
	if err != nil {
		s.logger.DebugContext(ctx, "Transaction rejected",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypeValidation).WithOperation(log.OpAdd).ToSlice()...)
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:          id,
		Description: desc,
		Amount:      amount,
		Type:        in.Type,
		Category:    in.Category,
		Date:        s.now(),
	}

	items := make([]core.Transaction, 0, len(s.items)+1)
	items = append(items, tx)
	s.items = append(items, s.items...)

	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().WithTransaction(tx.ID, tx.Type.String(), tx.Category.String(), tx.Amount.Cents).WithOperation(log.OpAdd).ToSlice()...)

	return tx, s.save(ctx)
}

// Delete removes the transaction with id. It reports whether one was removed;
// an unknown id is not an error and does not trigger a save.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	items := make([]core.Transaction, 0, len(s.items)-1)
	items = append(items, s.items[:idx]...)
	s.items = append(items, s.items[idx+1:]...)

	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTxID, id, log.FieldOperation, log.OpDelete)

	return true, s.save(ctx)
}

// List returns a copy of the transactions, newest first.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Get returns the transaction with id.
func (s *Store) Get(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return core.Transaction{}, false
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// PersistenceErr returns the last persistence failure, or nil once a save
// has succeeded.
func (s *Store) PersistenceErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// save must be called with s.mu held.
func (s *Store) save(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.items); err != nil {
		if !errors.Is(err, persistence.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", persistence.ErrUnavailable, err)
		}
		s.persistErr = err
		s.logger.ErrorContext(ctx, "Save failed, continuing in memory",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypePersistence).WithOperation(log.OpSave).ToSlice()...)
		return err
	}
	if s.persistErr != nil {
		s.logger.InfoContext(ctx, "Persistence recovered", log.FieldCount, len(s.items))
	}
	s.persistErr = nil
	return nil
}

func (s *Store) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (s *Store) indexOf(id string) int {
	for i, tx := range s.items {
		if tx.ID == id {
			return i
		}
	}
	return -1
}
