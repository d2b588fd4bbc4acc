package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "knowledge.json")
	payload := []byte(`{"name":"rook","episodes":10}`)

	if err := WriteFileAtomic(path, payload, 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("File content mismatch: got %q, want %q", string(data), string(payload))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0644)
	}

	// No temp files left behind
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "knowledge.json" {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "knowledge.json")

	if err := WriteFileAtomic(path, []byte(`{"episodes":1}`), 0644); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}

	updated := []byte(`{"episodes":2}`)
	if err := WriteFileAtomic(path, updated, 0644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(updated) {
		t.Errorf("File content mismatch: got %q, want %q", string(data), string(updated))
	}
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic("/nonexistent/dir/knowledge.json", []byte("data"), 0644)
	if err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}
