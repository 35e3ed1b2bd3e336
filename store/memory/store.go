package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/vesting"
	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
)

// Store is an in-memory implementation of store.Store. Each beneficiary's
// allocations are held in an append-only slice so insertion order survives
// without extra sequencing columns.
type Store struct {
	mu sync.RWMutex

	// beneficiary -> allocations in insertion order
	allocations map[string][]*allocation.Allocation
	closed      bool
}

func New() *Store {
	return &Store{
		allocations: make(map[string][]*allocation.Allocation),
	}
}

func (s *Store) CreateAllocation(_ context.Context, a *allocation.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return vesting.ErrStoreClosed
	}
	cp := *a
	s.allocations[a.Beneficiary] = append(s.allocations[a.Beneficiary], &cp)
	return nil
}

func (s *Store) GetAllocation(_ context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, vesting.ErrStoreClosed
	}
	for _, seq := range s.allocations {
		for _, a := range seq {
			if a.ID.String() == allocID.String() {
				cp := *a
				return &cp, nil
			}
		}
	}
	return nil, vesting.ErrAllocationNotFound
}

func (s *Store) ListAllocations(_ context.Context, beneficiary string) ([]*allocation.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, vesting.ErrStoreClosed
	}

	// Return detached copies so callers cannot mutate stored records.
	seq := s.allocations[beneficiary]
	result := make([]*allocation.Allocation, len(seq))
	for i, a := range seq {
		cp := *a
		result[i] = &cp
	}
	return result, nil
}

func (s *Store) UpdateAllocation(_ context.Context, a *allocation.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return vesting.ErrStoreClosed
	}

	seq := s.allocations[a.Beneficiary]
	for i := range seq {
		if seq[i].ID.String() == a.ID.String() {
			cp := *a
			cp.Touch()
			seq[i] = &cp
			return nil
		}
	}
	return vesting.ErrAllocationNotFound
}

func (s *Store) DeleteAllocations(_ context.Context, beneficiary string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, vesting.ErrStoreClosed
	}

	n := len(s.allocations[beneficiary])
	delete(s.allocations, beneficiary)
	return n, nil
}

func (s *Store) ListBeneficiaries(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, vesting.ErrStoreClosed
	}

	result := make([]string, 0, len(s.allocations))
	for b := range s.allocations {
		result = append(result, b)
	}
	sort.Strings(result)
	return result, nil
}

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return vesting.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
