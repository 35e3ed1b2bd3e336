package vesting

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/custody"
	"github.com/xraph/vesting/id"
	"github.com/xraph/vesting/plugin"
	"github.com/xraph/vesting/store"
	"github.com/xraph/vesting/types"
)

// DefaultCustodyAccount is the vault account that holds granted funds until
// they are released or revoked.
const DefaultCustodyAccount = "vesting_ledger"

// Ledger is the token-vesting engine. It owns every allocation record and is
// the only component allowed to read or mutate them. State-changing
// operations on the same beneficiary are serialized by a per-beneficiary
// lock; operations on different beneficiaries are independent.
type Ledger struct {
	store   store.Store
	vault   custody.Vault
	plugins *plugin.Registry
	logger  *slog.Logger

	owner   string
	account string
	now     func() time.Time

	// Per-beneficiary serialization
	mu    sync.Mutex
	locks map[string]*beneficiaryLock
}

// beneficiaryLock is a refcounted entry in the lock map. The refcount lets
// lockBeneficiary remove the entry once the last holder releases it, so the
// map does not grow with every beneficiary ever touched.
type beneficiaryLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a new Ledger instance. owner is the only identity allowed to
// call Issue and Revoke.
func New(s store.Store, v custody.Vault, owner string, opts ...Option) *Ledger {
	l := &Ledger{
		store:   s,
		vault:   v,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		owner:   owner,
		account: DefaultCustodyAccount,
		now:     func() time.Time { return time.Now().UTC() },
		locks:   make(map[string]*beneficiaryLock),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock overrides the time source used to evaluate vesting schedules.
// Vesting is a pure function of this clock; there is no background process.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithCustodyAccount sets the vault account funds are held under.
func WithCustodyAccount(account string) Option {
	return func(l *Ledger) {
		l.account = account
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("vesting ledger started",
		"owner", l.owner,
		"asset", l.vault.Asset(),
		"custody_account", l.account,
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// Owner returns the identity holding the owner capability.
func (l *Ledger) Owner() string { return l.owner }

// CustodyAccount returns the vault account granted funds are held under.
func (l *Ledger) CustodyAccount() string { return l.account }

// ──────────────────────────────────────────────────
// Issuance
// ──────────────────────────────────────────────────

// Grant describes one allocation to be issued.
type Grant struct {
	Beneficiary string
	Amount      types.Amount
	StartAt     time.Time     // vesting clock origin; zero means "now"
	Cliff       time.Duration // delay after StartAt before anything vests
	Duration    time.Duration // time after StartAt until fully vested
	InitialPct  int           // 0..100, tranche unlocked at cliff expiry
}

// Issue pulls the granted amount from the caller into ledger custody and
// appends a new allocation to the beneficiary's sequence. Owner-gated.
// Every precondition is checked before the transfer is attempted so a
// failed call performs no state change at all.
func (l *Ledger) Issue(ctx context.Context, g Grant) (*allocation.Allocation, error) {
	actor := ActorFrom(ctx)
	if actor != l.owner {
		return nil, ErrUnauthorized
	}
	if g.Beneficiary == "" {
		return nil, ErrInvalidBeneficiary
	}
	if g.Amount.Asset != l.vault.Asset() {
		return nil, ErrAssetMismatch
	}
	if g.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if g.Cliff < 0 || g.Duration < 0 {
		return nil, ErrInvalidInput
	}
	if g.Cliff > g.Duration {
		return nil, ErrCliffExceedsDuration
	}
	if g.InitialPct < 0 || g.InitialPct > 100 {
		return nil, ErrInvalidInitialPct
	}

	startAt := g.StartAt
	if startAt.IsZero() {
		startAt = l.now()
	}

	unlock := l.lockBeneficiary(g.Beneficiary)
	defer unlock()

	// The pull must be pre-authorized; check before attempting it.
	allowed, err := l.vault.Allowance(ctx, actor, l.account)
	if err != nil {
		return nil, fmt.Errorf("vesting: allowance check: %w", err)
	}
	if allowed.LessThan(g.Amount) {
		return nil, ErrInsufficientAllowance
	}

	if err := l.vault.TransferFrom(ctx, actor, l.account, l.account, g.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	a := &allocation.Allocation{
		Entity:      types.NewEntity(),
		ID:          id.NewAllocationID(),
		Beneficiary: g.Beneficiary,
		Start:       startAt.UTC(),
		Cliff:       g.Cliff,
		Duration:    g.Duration,
		Total:       g.Amount,
		Claimed:     types.Zero(g.Amount.Asset),
		Initial:     allocation.InitialTranche(g.Amount, g.InitialPct),
	}

	if err := l.store.CreateAllocation(ctx, a); err != nil {
		// Return custody to the payer before surfacing the store failure.
		if rerr := l.vault.Transfer(ctx, l.account, actor, g.Amount); rerr != nil {
			l.logger.Error("failed to return custody after store failure",
				"beneficiary", g.Beneficiary,
				"amount", g.Amount.String(),
				"error", rerr,
			)
		}
		return nil, err
	}

	l.plugins.EmitIssued(ctx, a)

	l.logger.Info("allocation issued",
		"beneficiary", g.Beneficiary,
		"amount", g.Amount.String(),
		"start", a.Start,
		"cliff", g.Cliff,
		"duration", g.Duration,
	)

	return a, nil
}

// ──────────────────────────────────────────────────
// Release
// ──────────────────────────────────────────────────

// ReleasableAmount returns the sum over the beneficiary's allocations of
// vested-minus-claimed as of the ledger clock. Read-only.
func (l *Ledger) ReleasableAmount(ctx context.Context, beneficiary string) (types.Amount, error) {
	zero := types.Zero(l.vault.Asset())
	if beneficiary == "" {
		return zero, ErrInvalidBeneficiary
	}

	allocs, err := l.store.ListAllocations(ctx, beneficiary)
	if err != nil {
		return zero, err
	}

	now := l.now()
	total := zero
	for _, a := range allocs {
		total = total.Add(a.ReleasableAt(now))
	}

	l.plugins.EmitReleasableChecked(ctx, beneficiary, total)

	return total, nil
}

// Release pays out everything currently releasable to the beneficiary.
// Callable by anyone; the payout always goes to the beneficiary. Claimed
// updates are committed for the whole sequence before any funds move; if a
// commit fails partway, the earlier updates are rolled back so a failed call
// leaves every allocation unchanged and nothing paid. Every allocation gets
// its claimed update, transfer, and event, including those with a zero delta.
func (l *Ledger) Release(ctx context.Context, beneficiary string) (types.Amount, error) {
	zero := types.Zero(l.vault.Asset())
	if beneficiary == "" {
		return zero, ErrInvalidBeneficiary
	}

	unlock := l.lockBeneficiary(beneficiary)
	defer unlock()

	allocs, err := l.store.ListAllocations(ctx, beneficiary)
	if err != nil {
		return zero, err
	}

	now := l.now()

	// Check custody for the grand total up front so the payout loop cannot
	// fail partway on balance.
	deltas := make([]types.Amount, len(allocs))
	releasable := zero
	for i, a := range allocs {
		deltas[i] = a.ReleasableAt(now)
		releasable = releasable.Add(deltas[i])
	}

	balance, err := l.vault.BalanceOf(ctx, l.account)
	if err != nil {
		return zero, fmt.Errorf("vesting: balance check: %w", err)
	}
	if balance.LessThan(releasable) {
		return zero, ErrInsufficientCustody
	}

	// Commit every claimed update before moving any funds.
	for i, a := range allocs {
		prev := a.Claimed
		a.Claimed = a.Claimed.Add(deltas[i])
		if err := l.store.UpdateAllocation(ctx, a); err != nil {
			a.Claimed = prev
			l.rollbackClaimed(ctx, allocs[:i], deltas[:i])
			return zero, err
		}
	}

	for i, a := range allocs {
		if err := l.vault.Transfer(ctx, l.account, beneficiary, deltas[i]); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		l.plugins.EmitReleased(ctx, beneficiary, deltas[i], a.Remaining())
	}

	if releasable.IsPositive() {
		l.logger.Info("released",
			"beneficiary", beneficiary,
			"amount", releasable.String(),
			"allocations", len(allocs),
		)
	}

	return releasable, nil
}

// rollbackClaimed undoes claimed updates already committed by a failed
// Release. Best effort: an allocation that cannot be restored is logged and
// left over-claimed rather than over-paid.
func (l *Ledger) rollbackClaimed(ctx context.Context, allocs []*allocation.Allocation, deltas []types.Amount) {
	for i, a := range allocs {
		a.Claimed = a.Claimed.Subtract(deltas[i])
		if err := l.store.UpdateAllocation(ctx, a); err != nil {
			l.logger.Error("failed to roll back claimed update",
				"beneficiary", a.Beneficiary,
				"allocation", a.ID.String(),
				"delta", deltas[i].String(),
				"error", err,
			)
		}
	}
}

// ──────────────────────────────────────────────────
// Revocation
// ──────────────────────────────────────────────────

// Revoke destroys the beneficiary's entire allocation sequence as a unit and
// returns the unclaimed remainder to the caller. Owner-gated.
//
// The remainder is grand-total minus grand-claimed: value that had vested but
// was never released is forfeited to the owner along with the unvested part.
func (l *Ledger) Revoke(ctx context.Context, beneficiary string) (types.Amount, error) {
	zero := types.Zero(l.vault.Asset())

	actor := ActorFrom(ctx)
	if actor != l.owner {
		return zero, ErrUnauthorized
	}
	if beneficiary == "" {
		return zero, ErrInvalidBeneficiary
	}

	unlock := l.lockBeneficiary(beneficiary)
	defer unlock()

	allocs, err := l.store.ListAllocations(ctx, beneficiary)
	if err != nil {
		return zero, err
	}

	total := zero
	claimed := zero
	for _, a := range allocs {
		total = total.Add(a.Total)
		claimed = claimed.Add(a.Claimed)
	}
	remainder := total.Subtract(claimed)

	balance, err := l.vault.BalanceOf(ctx, l.account)
	if err != nil {
		return zero, fmt.Errorf("vesting: balance check: %w", err)
	}
	if balance.LessThan(remainder) {
		return zero, ErrInsufficientCustody
	}

	if _, err := l.store.DeleteAllocations(ctx, beneficiary); err != nil {
		return zero, err
	}

	if err := l.vault.Transfer(ctx, l.account, actor, remainder); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	l.plugins.EmitRevoked(ctx, beneficiary, total, remainder)

	l.logger.Info("revoked",
		"beneficiary", beneficiary,
		"total_allocated", total.String(),
		"returned", remainder.String(),
		"allocations", len(allocs),
	)

	return remainder, nil
}

// ──────────────────────────────────────────────────
// Read surface
// ──────────────────────────────────────────────────

// Allocations returns the beneficiary's allocation sequence in insertion
// order.
func (l *Ledger) Allocations(ctx context.Context, beneficiary string) ([]*allocation.Allocation, error) {
	if beneficiary == "" {
		return nil, ErrInvalidBeneficiary
	}
	return l.store.ListAllocations(ctx, beneficiary)
}

// Beneficiaries returns every beneficiary with at least one allocation.
func (l *Ledger) Beneficiaries(ctx context.Context) ([]string, error) {
	return l.store.ListBeneficiaries(ctx)
}

// lockBeneficiary acquires the per-beneficiary mutex and returns its
// unlock function. The unlock drops the map entry when no goroutine holds
// or waits on it.
func (l *Ledger) lockBeneficiary(beneficiary string) func() {
	l.mu.Lock()
	entry, ok := l.locks[beneficiary]
	if !ok {
		entry = &beneficiaryLock{}
		l.locks[beneficiary] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, beneficiary)
		}
		l.mu.Unlock()
	}
}
