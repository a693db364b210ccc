package course

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jmliang/coursenotes/internal/ai"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return s
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	rec := Record{
		CourseName: "Algebra",
		Summary:    "S1",
		Messages:   []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
		Date:       "2024-01-01",
	}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "Algebra")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(*got, rec) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, rec)
	}

	if _, err := s.Load(ctx, "Geometry"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unsaved course, got %v", err)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, Record{CourseName: "Algebra", Summary: "old", Date: "2024-01-01"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, Record{CourseName: "Algebra", Summary: "new", Date: "2024-01-02"}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := s.Load(ctx, "Algebra")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Summary != "new" || got.Date != "2024-01-02" {
		t.Fatalf("expected the second save to win, got %+v", got)
	}

	names, err := s.ListNames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected a single name after overwrite, got %v", names)
	}
}

func TestFileStore_DeleteThenLoadIsAbsent(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, Record{CourseName: "Algebra", Summary: "S"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, "Algebra"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, "Algebra"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a name that never existed is a silent no-op.
	if err := s.Delete(ctx, "Geometry"); err != nil {
		t.Fatalf("delete of unknown name should not error: %v", err)
	}
}

func TestFileStore_FilenameIsSanitized(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, Record{CourseName: "Linear Algebra II", Summary: "S"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := filepath.Join(dir, "Linear_Algebra_II_history.json")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected file %s: %v", want, err)
	}

	// The record keeps the original name even though the filename is
	// sanitized.
	got, err := s.Load(ctx, "Linear Algebra II")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CourseName != "Linear Algebra II" {
		t.Fatalf("course name mangled: %q", got.CourseName)
	}

	names, err := s.ListNames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "Linear Algebra II" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestFileStore_EmptyNameRejected(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, Record{CourseName: "!!!"}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, Record{CourseName: "Algebra", Summary: "S"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken_history.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}

	names, err := s.ListNames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "Algebra" {
		t.Fatalf("unexpected names: %v", names)
	}
}
