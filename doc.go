// Package vesting provides a per-beneficiary token-vesting ledger for Go
// applications.
//
// Vesting is designed as a library, not a service. Import it directly into
// your Go application. It provides:
//
//   - Per-beneficiary sequences of vesting allocations with cliff, linear
//     duration, and an optional immediately-claimable initial tranche
//   - Lazy, pure-function vesting math (no background jobs or timers)
//   - Owner-gated issuance and revocation, open release
//   - Pluggable asset custody (in-memory vault built-in)
//   - Synchronous lifecycle events via the plugin system
//
// # Quick Start
//
// Create a ledger instance with your preferred store and a custody vault:
//
//	import (
//	    "github.com/xraph/vesting"
//	    "github.com/xraph/vesting/custody"
//	    "github.com/xraph/vesting/store/memory"
//	)
//
//	vault := custody.NewMemoryVault("xrp")
//	l := vesting.New(memory.New(), vault, "treasury")
//
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Grants create allocations. Each allocation vests independently:
//
//	ctx = vesting.WithActor(ctx, "treasury")
//	alloc, err := l.Issue(ctx, vesting.Grant{
//	    Beneficiary: "alice",
//	    Amount:      vesting.Tokens("xrp", 1000),
//	    Cliff:       100 * time.Second,
//	    Duration:    1000 * time.Second,
//	    InitialPct:  10,
//	})
//
// Anyone may trigger a release; the payout always goes to the beneficiary:
//
//	paid, err := l.Release(ctx, "alice")
//
// The owner may revoke, destroying the beneficiary's whole sequence and
// reclaiming everything not yet claimed:
//
//	returned, err := l.Revoke(ctx, "alice")
//
// # Arithmetic
//
// All quantities use integer arithmetic in the asset's smallest unit with
// truncating division. Proration runs through a 256-bit intermediate so
// schedules spanning years cannot overflow even at the int64 amount ceiling.
//
// # TypeID
//
// Allocations use TypeID for globally unique, type-safe identifiers:
//
//	alloc_01h2xcejqtf2nbrexx3vqjhp41
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package vesting
