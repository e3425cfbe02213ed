package backend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"saldo/internal/config"
	"saldo/internal/log"
	"saldo/internal/slot"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{SlotBackend: "sheets"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}

	cfg, err := FromAppConfig(&config.Config{SlotBackend: "file", DataDir: "/tmp/saldo"})
	if err != nil {
		t.Fatalf("from app config: %v", err)
	}
	if cfg.Type != FileBackend || cfg.DataDirectory != "/tmp/saldo" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file", Config{Type: FileBackend, DataDirectory: "data"}, false},
		{"file without dir", Config{Type: FileBackend}, true},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"unknown", Config{Type: "sheets"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTypeStrings(t *testing.T) {
	got := TypeStrings()
	if len(got) != 3 || got[0] != "memory" || got[1] != "file" || got[2] != "sqlite" {
		t.Fatalf("unexpected types %v", got)
	}
}

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f := NewFactory(log.Discard())

	configs := []Config{
		{Type: MemoryBackend},
		{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "saldo.db")},
	}

	for _, cfg := range configs {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			res, err := f.CreateSlot(ctx, cfg)
			if err != nil {
				t.Fatalf("create slot: %v", err)
			}
			defer func() {
				if err := res.Close(); err != nil {
					t.Errorf("cleanup: %v", err)
				}
			}()

			if _, err := res.Slot.Read(ctx, "transactions"); !errors.Is(err, slot.ErrNotFound) {
				t.Fatalf("expected ErrNotFound on fresh slot, got %v", err)
			}
			if err := res.Slot.Write(ctx, "transactions", []byte("[]")); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := res.Slot.Read(ctx, "transactions")
			if err != nil || string(got) != "[]" {
				t.Fatalf("read back %q, %v", got, err)
			}
		})
	}
}

func TestCreateSlotRejectsInvalidConfig(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateSlot(context.Background(), Config{Type: SQLiteBackend}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestResultCloseNil(t *testing.T) {
	var r *Result
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
