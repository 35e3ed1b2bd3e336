package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/vesting"
	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
	"github.com/xraph/vesting/types"
)

func alloc(beneficiary string, units int64) *allocation.Allocation {
	total := types.Tokens("xrp", units)
	return &allocation.Allocation{
		ID:          id.NewAllocationID(),
		Beneficiary: beneficiary,
		Start:       time.Now().UTC(),
		Duration:    time.Hour,
		Total:       total,
		Claimed:     types.Zero("xrp"),
		Initial:     types.Zero("xrp"),
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := alloc("bene_1", 100)
	second := alloc("bene_1", 200)
	third := alloc("bene_1", 300)
	for _, a := range []*allocation.Allocation{first, second, third} {
		if err := s.CreateAllocation(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.ListAllocations(ctx, "bene_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d allocations, want 3", len(list))
	}
	for i, want := range []int64{100, 200, 300} {
		if list[i].Total.Units != want {
			t.Errorf("position %d: got %d, want %d", i, list[i].Total.Units, want)
		}
	}
}

func TestDeleteRemovesWholeSequence(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.CreateAllocation(ctx, alloc("bene_1", 100))
	_ = s.CreateAllocation(ctx, alloc("bene_1", 200))
	_ = s.CreateAllocation(ctx, alloc("bene_2", 300))

	n, err := s.DeleteAllocations(ctx, "bene_1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	list, _ := s.ListAllocations(ctx, "bene_1")
	if len(list) != 0 {
		t.Errorf("sequence not empty after delete: %d", len(list))
	}

	// Other beneficiaries are untouched.
	other, _ := s.ListAllocations(ctx, "bene_2")
	if len(other) != 1 {
		t.Errorf("unrelated sequence affected: %d", len(other))
	}
}

func TestUpdateAllocation(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := alloc("bene_1", 100)
	_ = s.CreateAllocation(ctx, a)

	a.Claimed = types.Tokens("xrp", 40)
	if err := s.UpdateAllocation(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetAllocation(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Claimed.Units != 40 {
		t.Errorf("claimed: got %d, want 40", got.Claimed.Units)
	}
}

func TestRecordsAreDetached(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := alloc("bene_1", 100)
	_ = s.CreateAllocation(ctx, a)

	// Mutating the original after Create must not leak into the store.
	a.Claimed = types.Tokens("xrp", 100)
	got, err := s.GetAllocation(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Claimed.Units != 0 {
		t.Errorf("claimed after caller mutation: got %d, want 0", got.Claimed.Units)
	}

	// Same for records handed back by List.
	list, _ := s.ListAllocations(ctx, "bene_1")
	list[0].Claimed = types.Tokens("xrp", 100)
	got, _ = s.GetAllocation(ctx, a.ID)
	if got.Claimed.Units != 0 {
		t.Errorf("claimed after list mutation: got %d, want 0", got.Claimed.Units)
	}
}

func TestUpdateUnknownAllocation(t *testing.T) {
	s := New()
	err := s.UpdateAllocation(context.Background(), alloc("bene_1", 100))
	if !errors.Is(err, vesting.ErrAllocationNotFound) {
		t.Errorf("got %v, want ErrAllocationNotFound", err)
	}
}

func TestListBeneficiaries(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.CreateAllocation(ctx, alloc("carol", 1))
	_ = s.CreateAllocation(ctx, alloc("alice", 1))
	_ = s.CreateAllocation(ctx, alloc("alice", 2))

	got, err := s.ListBeneficiaries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "alice" || got[1] != "carol" {
		t.Errorf("got %v, want [alice carol]", got)
	}
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.Close()

	if err := s.Ping(ctx); !errors.Is(err, vesting.ErrStoreClosed) {
		t.Errorf("Ping: got %v, want ErrStoreClosed", err)
	}
	if err := s.CreateAllocation(ctx, alloc("bene_1", 1)); !errors.Is(err, vesting.ErrStoreClosed) {
		t.Errorf("Create: got %v, want ErrStoreClosed", err)
	}
}
