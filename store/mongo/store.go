// Package mongo provides a MongoDB-backed implementation of the vesting store
// using the Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	vesting "github.com/xraph/vesting"
	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
	vestingstore "github.com/xraph/vesting/store"
)

const colAllocations = "vesting_allocations"

// compile-time interface check
var _ vestingstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for the allocation collection.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "beneficiary", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	_, err := s.mdb.Collection(colAllocations).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("vesting/mongo: migrate %s indexes: %w", colAllocations, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("vesting/mongo: create allocation: %w", err)
	}
	return nil
}

func (s *Store) GetAllocation(ctx context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	var m allocationModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": allocID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, vesting.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("vesting/mongo: get allocation: %w", err)
	}
	return fromAllocationModel(&m)
}

// ListAllocations returns a beneficiary's allocations in grant order. The
// created_at sort is tied by the K-sortable _id so concurrent grants in the
// same second keep a stable order.
func (s *Store) ListAllocations(ctx context.Context, beneficiary string) ([]*allocation.Allocation, error) {
	var models []allocationModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"beneficiary": beneficiary}).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("vesting/mongo: list allocations: %w", err)
	}

	result := make([]*allocation.Allocation, len(models))
	for i := range models {
		a, err := fromAllocationModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = a
	}
	return result, nil
}

func (s *Store) UpdateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("vesting/mongo: update allocation: %w", err)
	}
	if res.MatchedCount() == 0 {
		return vesting.ErrAllocationNotFound
	}
	return nil
}

func (s *Store) DeleteAllocations(ctx context.Context, beneficiary string) (int, error) {
	res, err := s.mdb.NewDelete((*allocationModel)(nil)).
		Filter(bson.M{"beneficiary": beneficiary}).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("vesting/mongo: delete allocations: %w", err)
	}
	return int(res.DeletedCount()), nil
}

func (s *Store) ListBeneficiaries(ctx context.Context) ([]string, error) {
	res := s.mdb.Collection(colAllocations).Distinct(ctx, "beneficiary", bson.M{})

	var out []string
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("vesting/mongo: list beneficiaries: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
