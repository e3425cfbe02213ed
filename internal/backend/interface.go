package backend

import (
	"context"

	"saldo/internal/slot"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the slot instance and optional cleanup function
type Result struct {
	Slot    slot.Slot
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates slots based on configuration
type Factory interface {
	// CreateSlot creates a slot instance based on the provided config
	CreateSlot(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for slot creation
type Config struct {
	Type Type

	// File specific
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string
}

// Type represents the kind of durable slot
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
