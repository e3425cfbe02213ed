package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"saldo/internal/slot"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "db", "saldo.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, dbPath
}

func TestSQLiteRepository_ReadWrite(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	if _, err := repo.Read(ctx, "transactions"); !errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Write(ctx, "transactions", []byte(`[]`)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := repo.Write(ctx, "transactions", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.Read(ctx, "transactions")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestSQLiteRepository_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	repo, dbPath := newTestRepo(t)
	if err := repo.Write(ctx, "transactions", []byte(`[1,2]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migrations must be idempotent on an existing database
	reopened, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Read(ctx, "transactions")
	if err != nil || string(got) != "[1,2]" {
		t.Fatalf("unexpected value after reopen: %q err=%v", got, err)
	}
	if err := reopened.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSQLiteRepository_InvalidKey(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.Write(context.Background(), "no spaces", nil); !errors.Is(err, slot.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
