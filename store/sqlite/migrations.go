package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Vesting store (SQLite).
var Migrations = migrate.NewGroup("vesting")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_vesting_allocations",
			Version: "20260101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS vesting_allocations (
    id               TEXT PRIMARY KEY,
    beneficiary      TEXT NOT NULL DEFAULT '',
    start_at         TEXT NOT NULL DEFAULT (datetime('now')),
    cliff_seconds    INTEGER NOT NULL DEFAULT 0,
    duration_seconds INTEGER NOT NULL DEFAULT 0,
    asset            TEXT NOT NULL DEFAULT '',
    total_units      INTEGER NOT NULL DEFAULT 0,
    claimed_units    INTEGER NOT NULL DEFAULT 0,
    initial_units    INTEGER NOT NULL DEFAULT 0,
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_vesting_allocs_beneficiary ON vesting_allocations (beneficiary, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS vesting_allocations`)
				return err
			},
		},
	)
}
