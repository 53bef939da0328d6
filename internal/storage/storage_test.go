package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStorageSetGet(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "xiangqi-storage-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewStorage(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	defer s.Close()

	if err := s.Set([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get(k1) = %q, want %q", got, "v1")
	}

	missing, err := s.Get([]byte("missing"))
	if err != nil {
		t.Fatalf("Get(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("Get(missing) = %q, want nil", missing)
	}
}

func TestStorageIterate(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "xiangqi-storage-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewStorage(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	defer s.Close()

	for _, k := range []string{"book:1", "book:2", "other:1"} {
		if err := s.Set([]byte(k), []byte("x")); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	seen := 0
	err = s.Iterate([]byte("book:"), func(key, value []byte) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if seen != 2 {
		t.Errorf("Iterate saw %d book: entries, want 2", seen)
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}
}
