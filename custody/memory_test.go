package custody

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/vesting/types"
)

func xrp(units int64) types.Amount { return types.Tokens("xrp", units) }

func TestMintAndBalance(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")

	if err := v.Mint("alice", xrp(1000)); err != nil {
		t.Fatal(err)
	}

	bal, err := v.BalanceOf(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if bal.Units != 1000 {
		t.Errorf("balance: got %d, want 1000", bal.Units)
	}
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")
	_ = v.Mint("alice", xrp(1000))

	if err := v.Transfer(ctx, "alice", "bob", xrp(400)); err != nil {
		t.Fatal(err)
	}

	a, _ := v.BalanceOf(ctx, "alice")
	b, _ := v.BalanceOf(ctx, "bob")
	if a.Units != 600 || b.Units != 400 {
		t.Errorf("balances: alice=%d bob=%d, want 600/400", a.Units, b.Units)
	}
}

func TestTransferZeroIsNoop(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")

	// No balances exist; a zero transfer must still succeed.
	if err := v.Transfer(ctx, "alice", "bob", xrp(0)); err != nil {
		t.Fatalf("zero transfer: %v", err)
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")
	_ = v.Mint("alice", xrp(100))

	err := v.Transfer(ctx, "alice", "bob", xrp(101))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("got %v, want ErrInsufficientBalance", err)
	}

	// Failed transfers leave balances untouched.
	a, _ := v.BalanceOf(ctx, "alice")
	if a.Units != 100 {
		t.Errorf("balance changed on failed transfer: %d", a.Units)
	}
}

func TestTransferFrom(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")
	_ = v.Mint("alice", xrp(1000))
	_ = v.Approve("alice", "ledger", xrp(600))

	if err := v.TransferFrom(ctx, "alice", "ledger", "ledger", xrp(600)); err != nil {
		t.Fatal(err)
	}

	a, _ := v.BalanceOf(ctx, "alice")
	l, _ := v.BalanceOf(ctx, "ledger")
	if a.Units != 400 || l.Units != 600 {
		t.Errorf("balances: alice=%d ledger=%d, want 400/600", a.Units, l.Units)
	}

	// Allowance is consumed.
	rem, _ := v.Allowance(ctx, "alice", "ledger")
	if rem.Units != 0 {
		t.Errorf("allowance: got %d, want 0", rem.Units)
	}
}

func TestTransferFromWithoutAllowance(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")
	_ = v.Mint("alice", xrp(1000))

	err := v.TransferFrom(ctx, "alice", "ledger", "ledger", xrp(1))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("got %v, want ErrInsufficientAllowance", err)
	}
}

func TestTransferFromZeroIsNoop(t *testing.T) {
	ctx := context.Background()
	v := NewMemoryVault("xrp")
	_ = v.Mint("alice", xrp(1000))

	// No Approve has happened, so no allowance entry exists for alice; a
	// zero pull must still succeed without touching any state.
	if err := v.TransferFrom(ctx, "alice", "ledger", "ledger", xrp(0)); err != nil {
		t.Fatalf("zero transferFrom: %v", err)
	}

	a, _ := v.BalanceOf(ctx, "alice")
	if a.Units != 1000 {
		t.Errorf("balance changed on zero pull: %d", a.Units)
	}
	rem, _ := v.Allowance(ctx, "alice", "ledger")
	if rem.Units != 0 {
		t.Errorf("allowance: got %d, want 0", rem.Units)
	}
}

func TestAssetMismatch(t *testing.T) {
	v := NewMemoryVault("xrp")

	if err := v.Mint("alice", types.Tokens("usdc", 100)); !errors.Is(err, ErrAssetMismatch) {
		t.Errorf("Mint: got %v, want ErrAssetMismatch", err)
	}
	if err := v.Transfer(context.Background(), "a", "b", types.Tokens("usdc", 1)); !errors.Is(err, ErrAssetMismatch) {
		t.Errorf("Transfer: got %v, want ErrAssetMismatch", err)
	}
}

func TestNegativeAmount(t *testing.T) {
	v := NewMemoryVault("xrp")
	_ = v.Mint("alice", xrp(100))

	if err := v.Transfer(context.Background(), "alice", "bob", xrp(-1)); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("got %v, want ErrNegativeAmount", err)
	}
}
