// Package slot defines the durable key-value slot the transaction list is
// persisted into, and shared helpers for its implementations.
package slot

import (
	"context"
	"errors"
	"fmt"
)

// MaxKeyLength bounds slot key names.
const MaxKeyLength = 64

var (
	// ErrNotFound is returned by Read when the key was never written.
	ErrNotFound = errors.New("slot not found")

	// ErrInvalidKey is returned for keys outside [A-Za-z0-9_-]{1,64}.
	ErrInvalidKey = errors.New("invalid slot key")
)

// Ports for outbound adapters.
type (
	// Slot is a named durable location holding one opaque value per key.
	// Write replaces the whole value or fails; partial writes are not visible.
	Slot interface {
		Read(ctx context.Context, key string) ([]byte, error)
		Write(ctx context.Context, key string, value []byte) error
	}
)

// ValidateKey checks that key is usable as a file name and a table key.
func ValidateKey(key string) error {
	if key == "" || len(key) > MaxKeyLength {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
