package store

import (
	"errors"
	"testing"
)

func TestMemoryStore_BasicOperations(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()

	if err := ms.Set("key1", []byte("value1")); err != nil {
		t.Errorf("Failed to set key: %v", err)
	}

	retrieved, err := ms.Get("key1")
	if err != nil {
		t.Errorf("Failed to get key: %v", err)
	}
	if string(retrieved) != "value1" {
		t.Errorf("Expected value1, got %s", string(retrieved))
	}

	if _, err := ms.Get("missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}

	if err := ms.Delete("key1"); err != nil {
		t.Errorf("Failed to delete key: %v", err)
	}
	if _, err := ms.Get("key1"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_ValueIsolation(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()

	original := []byte("original")
	if err := ms.Set("key", original); err != nil {
		t.Fatalf("Failed to set key: %v", err)
	}

	// Mutating the caller's slice must not change the stored value.
	original[0] = 'X'

	retrieved, err := ms.Get("key")
	if err != nil {
		t.Fatalf("Failed to get key: %v", err)
	}
	if string(retrieved) != "original" {
		t.Errorf("Stored value was mutated, got %s", string(retrieved))
	}

	// Mutating a retrieved slice must not change the stored value either.
	retrieved[0] = 'Y'
	again, err := ms.Get("key")
	if err != nil {
		t.Fatalf("Failed to get key: %v", err)
	}
	if string(again) != "original" {
		t.Errorf("Stored value was mutated via read, got %s", string(again))
	}
}
