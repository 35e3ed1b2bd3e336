package custody

import (
	"context"
	"sync"

	"github.com/xraph/vesting/types"
)

// compile-time interface check
var _ Vault = (*MemoryVault)(nil)

// MemoryVault is an in-process Vault bound to a single asset. It implements
// ERC-20-style balance and allowance bookkeeping and is suitable for tests
// and single-process deployments.
type MemoryVault struct {
	mu    sync.Mutex
	asset string

	balances   map[string]int64
	allowances map[string]map[string]int64 // owner -> spender -> units
}

// NewMemoryVault creates a MemoryVault for the given asset symbol.
func NewMemoryVault(asset string) *MemoryVault {
	return &MemoryVault{
		asset:      types.Zero(asset).Asset,
		balances:   make(map[string]int64),
		allowances: make(map[string]map[string]int64),
	}
}

// Asset returns the bound asset symbol.
func (v *MemoryVault) Asset() string { return v.asset }

// Mint credits an account. Test and bootstrap helper; not part of Vault.
func (v *MemoryVault) Mint(account string, amount types.Amount) error {
	if err := v.check(amount); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances[account] += amount.Units
	return nil
}

// Approve sets (not increments) the spender's allowance over owner's funds.
func (v *MemoryVault) Approve(owner, spender string, amount types.Amount) error {
	if err := v.check(amount); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	m, ok := v.allowances[owner]
	if !ok {
		m = make(map[string]int64)
		v.allowances[owner] = m
	}
	m[spender] = amount.Units
	return nil
}

// BalanceOf implements Vault.
func (v *MemoryVault) BalanceOf(_ context.Context, account string) (types.Amount, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return types.Tokens(v.asset, v.balances[account]), nil
}

// Allowance implements Vault.
func (v *MemoryVault) Allowance(_ context.Context, owner, spender string) (types.Amount, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return types.Tokens(v.asset, v.allowances[owner][spender]), nil
}

// TransferFrom implements Vault. Balance, allowance, and both account
// mutations happen under one lock so the transfer is all-or-nothing.
func (v *MemoryVault) TransferFrom(_ context.Context, owner, spender, recipient string, amount types.Amount) error {
	if err := v.check(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.allowances[owner][spender] < amount.Units {
		return ErrInsufficientAllowance
	}
	if v.balances[owner] < amount.Units {
		return ErrInsufficientBalance
	}

	v.allowances[owner][spender] -= amount.Units
	v.balances[owner] -= amount.Units
	v.balances[recipient] += amount.Units
	return nil
}

// Transfer implements Vault.
func (v *MemoryVault) Transfer(_ context.Context, from, to string, amount types.Amount) error {
	if err := v.check(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.balances[from] < amount.Units {
		return ErrInsufficientBalance
	}

	v.balances[from] -= amount.Units
	v.balances[to] += amount.Units
	return nil
}

func (v *MemoryVault) check(amount types.Amount) error {
	if amount.Asset != v.asset {
		return ErrAssetMismatch
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
