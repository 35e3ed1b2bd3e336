package store

import (
	"context"

	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
)

// Store is the unified storage interface for the vesting ledger.
// The persisted layout is exactly one mapping: beneficiary -> ordered list
// of allocation records. ListAllocations must preserve insertion order;
// release and revoke walk the sequence in that order.
type Store interface {
	// Allocation methods
	CreateAllocation(ctx context.Context, a *allocation.Allocation) error
	GetAllocation(ctx context.Context, allocID id.AllocationID) (*allocation.Allocation, error)
	ListAllocations(ctx context.Context, beneficiary string) ([]*allocation.Allocation, error)
	UpdateAllocation(ctx context.Context, a *allocation.Allocation) error
	// DeleteAllocations removes the beneficiary's entire sequence as a unit
	// and returns how many records were removed.
	DeleteAllocations(ctx context.Context, beneficiary string) (int, error)
	ListBeneficiaries(ctx context.Context) ([]string, error)

	// Lifecycle methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
