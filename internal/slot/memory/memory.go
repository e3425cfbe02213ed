package memory

import (
	"context"
	"sync"

	"saldo/internal/slot"
)

// Slot keeps values in process memory. It is not durable and is meant for
// tests and for running without a data directory.
type Slot struct {
	mu       sync.Mutex
	values   map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

func New() *Slot {
	return &Slot{values: map[string][]byte{}}
}

// Read returns a copy of the stored value.
func (s *Slot) Read(_ context.Context, key string) ([]byte, error) {
	if err := slot.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, slot.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of value under key.
func (s *Slot) Write(_ context.Context, key string, value []byte) error {
	if err := slot.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Put seeds a raw value, bypassing failure injection.
func (s *Slot) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
}

// Get returns the raw value without failure injection.
func (s *Slot) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return append([]byte(nil), v...), ok
}

// FailReads makes every Read return err until called again with nil.
func (s *Slot) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites makes every Write return err until called again with nil.
func (s *Slot) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Writes counts successful writes.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
