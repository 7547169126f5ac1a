package store

import (
	"errors"
	"os"
	"testing"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	bs, err := NewBadgerStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	t.Cleanup(func() { bs.Close() })
	return bs
}

func TestBadgerStore_BasicOperations(t *testing.T) {
	bs := newTestBadgerStore(t)

	key := "draw:2025-01-01"
	value := []byte(`{"date":"2025-01-01"}`)

	if err := bs.Set(key, value); err != nil {
		t.Errorf("Failed to set key: %v", err)
	}

	retrieved, err := bs.Get(key)
	if err != nil {
		t.Errorf("Failed to get key: %v", err)
	}
	if string(retrieved) != string(value) {
		t.Errorf("Expected value %s, got %s", string(value), string(retrieved))
	}
}

func TestBadgerStore_MissingKey(t *testing.T) {
	bs := newTestBadgerStore(t)

	_, err := bs.Get("missing_key")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestBadgerStore_Delete(t *testing.T) {
	bs := newTestBadgerStore(t)

	key := "delete_me"
	if err := bs.Set(key, []byte("value")); err != nil {
		t.Fatalf("Failed to set key: %v", err)
	}

	if err := bs.Delete(key); err != nil {
		t.Errorf("Failed to delete key: %v", err)
	}

	_, err := bs.Get(key)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestBadgerStore_EmptyKey(t *testing.T) {
	bs := newTestBadgerStore(t)

	if err := bs.Set("", []byte("value")); !errors.Is(err, ErrKeyEmpty) {
		t.Errorf("Expected ErrKeyEmpty on set, got %v", err)
	}
	if _, err := bs.Get(""); !errors.Is(err, ErrKeyEmpty) {
		t.Errorf("Expected ErrKeyEmpty on get, got %v", err)
	}
}

func TestBadgerStore_Reopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	bs, err := NewBadgerStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}

	if err := bs.Set("persistent", []byte("survives restarts")); err != nil {
		t.Fatalf("Failed to set key: %v", err)
	}
	if err := bs.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	reopened, err := NewBadgerStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to reopen BadgerStore: %v", err)
	}
	defer reopened.Close()

	retrieved, err := reopened.Get("persistent")
	if err != nil {
		t.Fatalf("Failed to get key after reopen: %v", err)
	}
	if string(retrieved) != "survives restarts" {
		t.Errorf("Expected value to survive reopen, got %s", string(retrieved))
	}
}

func TestBadgerStore_InvalidPath(t *testing.T) {
	_, err := NewBadgerStore("/invalid/path/that/does/not/exist")
	if err == nil {
		t.Error("Expected error when creating BadgerStore with invalid path, got nil")
	}
}
