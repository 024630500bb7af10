package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("lock file should exist after locking")
	}
	if lock.file == nil {
		t.Error("expected file handle to be set after locking")
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if lock.file != nil {
		t.Error("expected file handle to be nil after unlocking")
	}
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	t.Parallel()

	lock := NewFileLock(filepath.Join(t.TempDir(), "never-locked.lock"))

	if err := lock.Unlock(); err != nil {
		t.Errorf("Unlock() without Lock() should not error, got %v", err)
	}
}

func TestFileLock_DoubleUnlock(t *testing.T) {
	t.Parallel()

	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("first Unlock() error = %v", err)
	}

	// Second unlock should be safe (no-op)
	if err := lock.Unlock(); err != nil {
		t.Errorf("second Unlock() should not error, got %v", err)
	}
}

func TestFileLock_Concurrent(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "test.lock")

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		lock := NewFileLock(lockPath)
		if err := lock.Lock(); err != nil {
			t.Errorf("goroutine 1 Lock() error = %v", err)
			return
		}
		mu.Lock()
		order = append(order, 1)
		mu.Unlock()

		time.Sleep(50 * time.Millisecond)

		if err := lock.Unlock(); err != nil {
			t.Errorf("goroutine 1 Unlock() error = %v", err)
		}
	}()

	// Give the first goroutine time to acquire the lock.
	time.Sleep(10 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		lock := NewFileLock(lockPath)
		if err := lock.Lock(); err != nil {
			t.Errorf("goroutine 2 Lock() error = %v", err)
			return
		}
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()

		if err := lock.Unlock(); err != nil {
			t.Errorf("goroutine 2 Unlock() error = %v", err)
		}
	}()

	wg.Wait()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("lock acquisition order = %v, want [1 2]", order)
	}
}

func TestWithLock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lockPath := filepath.Join(dir, "jobs.lock")
	dataPath := filepath.Join(dir, "jobs.json")

	// Concurrent read-modify-write cycles under the lock must not lose
	// updates.
	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(lockPath, func() error {
				var v struct{ Count int }
				if err := LoadJSON(dataPath, &v); err != nil && !os.IsNotExist(err) {
					return err
				}
				v.Count++
				return SaveJSON(dataPath, v)
			})
			if err != nil {
				t.Errorf("WithLock: %v", err)
			}
		}()
	}
	wg.Wait()

	var v struct{ Count int }
	if err := LoadJSON(dataPath, &v); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if v.Count != n {
		t.Errorf("Count = %d, want %d", v.Count, n)
	}
}
