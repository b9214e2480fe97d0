package storage

import (
	"bytes"
	"sync"
	"testing"
)

// TestMemoryStore tests the in-memory store implementation
func TestMemoryStore(t *testing.T) {
	t.Run("get on empty store misses", func(t *testing.T) {
		store := NewMemoryStore()

		_, err := store.Get("nonexistent")
		if err != ErrKeyNotFound {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("put and get values", func(t *testing.T) {
		store := NewMemoryStore()

		if err := store.Put("key1", []byte("value1")); err != nil {
			t.Fatalf("failed to put value: %v", err)
		}

		value, err := store.Get("key1")
		if err != nil {
			t.Fatalf("failed to get value: %v", err)
		}
		if !bytes.Equal(value, []byte("value1")) {
			t.Errorf("expected 'value1', got %s", string(value))
		}
	})

	t.Run("overwrite existing key", func(t *testing.T) {
		store := NewMemoryStore()

		if err := store.Put("key1", []byte("value1")); err != nil {
			t.Fatalf("failed to put initial value: %v", err)
		}
		if err := store.Put("key1", []byte("value2")); err != nil {
			t.Fatalf("failed to overwrite value: %v", err)
		}

		value, err := store.Get("key1")
		if err != nil {
			t.Fatalf("failed to get value: %v", err)
		}
		if !bytes.Equal(value, []byte("value2")) {
			t.Errorf("expected 'value2', got %s", string(value))
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := NewMemoryStore()

		if err := store.Delete("never-existed"); err != nil {
			t.Errorf("delete of absent key should not error, got %v", err)
		}

		store.Put("key1", []byte("value1"))
		if err := store.Delete("key1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Get("key1"); err != ErrKeyNotFound {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
		if err := store.Delete("key1"); err != nil {
			t.Errorf("second delete should not error, got %v", err)
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		store := NewMemoryStore()
		store.Put("key1", []byte("value1"))

		value, _ := store.Get("key1")
		value[0] = 'X'

		fresh, _ := store.Get("key1")
		if !bytes.Equal(fresh, []byte("value1")) {
			t.Errorf("mutating a returned value affected the store: %s", fresh)
		}
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		store := NewMemoryStore()
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				store.Put("key", []byte{byte(n)})
				store.Get("key")
			}(i)
		}
		wg.Wait()
	})
}
