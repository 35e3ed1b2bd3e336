package allocation

import (
	"context"

	"github.com/xraph/vesting/id"
)

// Store is the allocation-scoped persistence interface.
// List must return allocations in insertion order; release and revoke walk
// the sequence in that order.
type Store interface {
	Create(ctx context.Context, a *Allocation) error
	Get(ctx context.Context, allocID id.AllocationID) (*Allocation, error)
	List(ctx context.Context, beneficiary string) ([]*Allocation, error)
	Update(ctx context.Context, a *Allocation) error
	DeleteForBeneficiary(ctx context.Context, beneficiary string) (int, error)
}
