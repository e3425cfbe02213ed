// Package backend builds the durable slot selected by configuration.
package backend

import (
	"context"
	"fmt"

	"saldo/internal/log"
	"saldo/internal/slot/file"
	"saldo/internal/slot/memory"
	"saldo/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new slot factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSlot implements Factory.CreateSlot
func (f *DefaultFactory) CreateSlot(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteSlot(ctx, config)
	case FileBackend:
		return f.createFileSlot(config)
	case MemoryBackend:
		return f.createMemorySlot()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteSlot(ctx context.Context, config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("ping SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite slot", "db_path", config.SQLiteDBPath)

	return &Result{
		Slot:    repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createFileSlot(config Config) (*Result, error) {
	s := file.New(config.DataDirectory)

	f.logger.Info("Initialized file slot", "data_directory", s.Dir())

	return &Result{Slot: s}, nil
}

func (f *DefaultFactory) createMemorySlot() (*Result, error) {
	f.logger.Warn("Initialized memory slot, transactions will not survive a restart")

	return &Result{Slot: memory.New()}, nil
}
