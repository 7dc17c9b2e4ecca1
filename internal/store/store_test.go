package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := Open(BackendFile, filepath.Join(dir, "nested", "save.json"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	db, err := Open(BackendSQLite, filepath.Join(dir, "save.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		_ = file.Close()
		_ = db.Close()
	})
	return map[string]Store{BackendFile: file, BackendSQLite: db}
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(context.Background())
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, []byte(`{"name":"first"}`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save(ctx, []byte(`{"name":"second"}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(got) != `{"name":"second"}` {
				t.Fatalf("loaded %q, want the second save", got)
			}
		})
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
				t.Fatalf("save err = %v, want context.Canceled", err)
			}
			if _, err := s.Load(ctx); !errors.Is(err, context.Canceled) {
				t.Fatalf("load err = %v, want context.Canceled", err)
			}
		})
	}
}

func TestFileSaveLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := f.Save(context.Background(), []byte("{}")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind: %v", err)
	}
}

func TestSQLiteReopenKeepsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Save(ctx, []byte("kept")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "kept" {
		t.Fatalf("loaded %q, want kept", got)
	}
}

func TestOpenRejectsBadInput(t *testing.T) {
	if _, err := Open("postgres", "x"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := Open(BackendFile, "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(BackendSQLite, ""); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
}
