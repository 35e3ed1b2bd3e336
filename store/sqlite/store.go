// Package sqlite provides a SQLite-backed implementation of the vesting store
// using the Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	vesting "github.com/xraph/vesting"
	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
	vestingstore "github.com/xraph/vesting/store"
)

// compile-time interface check
var _ vestingstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("vesting/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("vesting/sqlite: migration failed: %w", err)
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetAllocation(ctx context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	m := new(allocationModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", allocID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, vesting.ErrAllocationNotFound
		}
		return nil, err
	}
	return fromAllocationModel(m)
}

// ListAllocations returns a beneficiary's allocations in grant order. The
// created_at sort is tied by the K-sortable id so concurrent grants in the
// same second keep a stable order.
func (s *Store) ListAllocations(ctx context.Context, beneficiary string) ([]*allocation.Allocation, error) {
	var models []allocationModel
	err := s.sdb.NewSelect(&models).
		Where("beneficiary = ?", beneficiary).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	allocs := make([]*allocation.Allocation, 0, len(models))
	for i := range models {
		a, err := fromAllocationModel(&models[i])
		if err != nil {
			return nil, err
		}
		allocs = append(allocs, a)
	}
	return allocs, nil
}

func (s *Store) UpdateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	m.UpdatedAt = now()
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return vesting.ErrAllocationNotFound
	}
	return nil
}

func (s *Store) DeleteAllocations(ctx context.Context, beneficiary string) (int, error) {
	res, err := s.sdb.NewDelete((*allocationModel)(nil)).
		Where("beneficiary = ?", beneficiary).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (s *Store) ListBeneficiaries(ctx context.Context) ([]string, error) {
	var models []allocationModel
	err := s.sdb.NewSelect(&models).
		OrderExpr("beneficiary ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(models))
	for i := range models {
		b := models[i].Beneficiary
		if len(out) == 0 || out[len(out)-1] != b {
			out = append(out, b)
		}
	}
	return out, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func now() time.Time { return time.Now().UTC() }
