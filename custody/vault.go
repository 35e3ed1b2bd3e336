// Package custody abstracts the fungible-asset transfer collaborator the
// vesting ledger depends on. A Vault either fully applies a transfer or
// fully rejects it; there is no partial transfer.
package custody

import (
	"context"
	"errors"

	"github.com/xraph/vesting/types"
)

// Sentinel errors returned by Vault implementations.
var (
	ErrInsufficientBalance   = errors.New("custody: insufficient balance")
	ErrInsufficientAllowance = errors.New("custody: insufficient allowance")
	ErrAssetMismatch         = errors.New("custody: asset mismatch")
	ErrNegativeAmount        = errors.New("custody: negative amount")
)

// Vault is the asset custody interface consumed by the ledger.
//
// TransferFrom moves pre-authorized funds between third-party accounts and
// consumes allowance; Transfer moves funds the caller's account already holds.
// Both succeed or fail as a whole.
type Vault interface {
	// Asset returns the symbol of the asset this vault is bound to.
	Asset() string

	// BalanceOf returns the balance held by an account.
	BalanceOf(ctx context.Context, account string) (types.Amount, error)

	// Allowance returns how much spender may still pull from owner
	// via TransferFrom.
	Allowance(ctx context.Context, owner, spender string) (types.Amount, error)

	// TransferFrom moves amount from the owner account to the recipient,
	// consuming the spender's allowance. The spender is the account on whose
	// behalf the pull is executed.
	TransferFrom(ctx context.Context, owner, spender, recipient string, amount types.Amount) error

	// Transfer moves amount from one account to another. A zero amount is
	// a successful no-op.
	Transfer(ctx context.Context, from, to string, amount types.Amount) error
}
