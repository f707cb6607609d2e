package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go-crowd-monitor/pkg/validation"
)

func localLocation(path string) validation.Location {
	return validation.Location{Raw: path, Scheme: validation.SchemeFile, Path: path}
}

func TestLocalStore_WriteThenOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heatmap.png")
	store := NewLocalStore()

	err := store.Write(context.Background(), localLocation(path), func(w io.Writer) error {
		_, err := w.Write([]byte("encoded"))
		return err
	})
	if err != nil {
		t.Fatalf("Unexpected write error: %v", err)
	}

	body, err := store.Open(context.Background(), localLocation(path))
	if err != nil {
		t.Fatalf("Unexpected open error: %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "encoded" {
		t.Errorf("Expected %q, got %q", "encoded", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestLocalStore_FailedEncodeLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heatmap.png")
	store := NewLocalStore()
	boom := errors.New("encoder exploded")

	err := store.Write(context.Background(), localLocation(path), func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected encoder error, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no files after failed write, found %d", len(entries))
	}
}

func TestLocalStore_FailedEncodeKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heatmap.png")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewLocalStore()
	store.Write(context.Background(), localLocation(path), func(w io.Writer) error {
		return errors.New("fail")
	})

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "previous" {
		t.Errorf("Expected previous content to survive, got %q (%v)", data, err)
	}
}

func TestLocalStore_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "heatmap.png")
	store := NewLocalStore()

	err := store.Write(context.Background(), localLocation(path), func(w io.Writer) error { return nil })
	if err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store := NewLocalStore()
	_, err := store.Open(context.Background(), localLocation(filepath.Join(t.TempDir(), "nope.png")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
