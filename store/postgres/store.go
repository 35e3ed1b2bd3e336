package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	vesting "github.com/xraph/vesting"
	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/id"
	vestingstore "github.com/xraph/vesting/store"
)

// compile-time interface check
var _ vestingstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db  *grove.DB
	pdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		pdb: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pdb)
	if err != nil {
		return fmt.Errorf("vesting/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("vesting/postgres: migration failed: %w", err)
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

// ==================== Allocation Store ====================

func (s *Store) CreateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	_, err := s.pdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetAllocation(ctx context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	m := new(allocationModel)
	err := s.pdb.NewSelect(m).
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

func (s *Store) ListAllocations(ctx context.Context, beneficiary string) ([]*allocation.Allocation, error) {
	var models []allocationModel
	q := s.pdb.NewSelect(&models).
		Where("beneficiary = ?", beneficiary).
		OrderExpr("created_at ASC, id ASC") // alloc IDs are K-sortable, preserving insertion order

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	res, err := s.pdb.NewUpdate(m).WherePK().Exec(ctx)
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
	res, err := s.pdb.NewDelete((*allocationModel)(nil)).
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
	q := s.pdb.NewSelect(&models).
		OrderExpr("beneficiary ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]string, 0, len(models))
	for i := range models {
		b := models[i].Beneficiary
		if len(result) == 0 || result[len(result)-1] != b {
			result = append(result, b)
		}
	}
	return result, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
