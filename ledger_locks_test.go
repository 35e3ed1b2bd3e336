package vesting

import (
	"sync"
	"testing"
)

func TestBeneficiaryLockReclaimedAfterUnlock(t *testing.T) {
	l := New(nil, nil, "owner")

	unlock := l.lockBeneficiary("alice")

	l.mu.Lock()
	n := len(l.locks)
	l.mu.Unlock()
	if n != 1 {
		t.Fatalf("lock entries while held = %d, want 1", n)
	}

	unlock()

	l.mu.Lock()
	n = len(l.locks)
	l.mu.Unlock()
	if n != 0 {
		t.Fatalf("lock entries after release = %d, want 0", n)
	}
}

func TestBeneficiaryLockReclaimedUnderContention(t *testing.T) {
	l := New(nil, nil, "owner")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				unlock := l.lockBeneficiary("alice")
				unlock()
			}
		}()
	}
	wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Fatalf("lock entries after contention = %d, want 0", len(l.locks))
	}
}
