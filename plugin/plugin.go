// Package plugin provides an extensible plugin system for Vesting.
// Plugins can hook into ledger lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/vesting/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Allocation lifecycle hooks
// ──────────────────────────────────────────────────

// OnIssued is called after a new allocation enters custody.
// The alloc argument is the *allocation.Allocation that was created.
type OnIssued interface {
	Plugin
	OnIssued(ctx context.Context, alloc interface{}) error
}

// OnReleased is called once per allocation processed by a release, including
// allocations whose releasable delta was zero. remaining is the allocation's
// total minus its claimed amount after the release.
type OnReleased interface {
	Plugin
	OnReleased(ctx context.Context, beneficiary string, amount, remaining types.Amount) error
}

// OnRevoked is called after a beneficiary's entire allocation sequence has
// been destroyed. total is the grand total ever granted; returned is the
// unclaimed remainder sent back to the owner.
type OnRevoked interface {
	Plugin
	OnRevoked(ctx context.Context, beneficiary string, total, returned types.Amount) error
}

// ──────────────────────────────────────────────────
// Read-path hooks
// ──────────────────────────────────────────────────

// OnReleasableChecked is called when a releasable-amount query completes.
type OnReleasableChecked interface {
	Plugin
	OnReleasableChecked(ctx context.Context, beneficiary string, releasable types.Amount) error
}
