package allocation

import (
	"time"

	"github.com/holiman/uint256"

	"github.com/xraph/vesting/id"
	"github.com/xraph/vesting/types"
)

// State describes where an allocation sits on its vesting timeline.
// Transitions are purely time-driven; no operation changes the state directly.
type State string

const (
	StateLocked      State = "locked"       // before start+cliff, nothing unlocked
	StateVesting     State = "vesting"      // between cliff expiry and full duration
	StateFullyVested State = "fully_vested" // at or after start+duration
)

// Allocation is one vesting grant: a schedule plus a running claimed total.
// Allocations are created only through the ledger's Issue operation and are
// mutated only by Release (claimed advances) or destroyed by Revoke.
type Allocation struct {
	types.Entity
	ID          id.AllocationID `json:"id"`
	Beneficiary string          `json:"beneficiary"`
	Start       time.Time       `json:"start"`
	Cliff       time.Duration   `json:"cliff"`
	Duration    time.Duration   `json:"duration"`
	Total       types.Amount    `json:"total"`
	Claimed     types.Amount    `json:"claimed"`
	Initial     types.Amount    `json:"initial"`
}

// VestedAt returns the cumulative quantity unlocked by the schedule as of t,
// irrespective of whether it has been released. Three regions:
//
//   - before start+cliff: zero, including the initial tranche
//   - at or after start+duration: the full total
//   - otherwise: initial + (total-initial) * elapsed / duration, truncating
//
// The linear term is proportional to time elapsed since start, not since
// cliff expiry. Together with the initial tranche this makes the curve step
// at the cliff rather than ramp from zero there.
func (a *Allocation) VestedAt(t time.Time) types.Amount {
	elapsed := t.Unix() - a.Start.Unix()
	cliff := int64(a.Cliff / time.Second)
	duration := int64(a.Duration / time.Second)

	switch {
	case elapsed < cliff:
		return types.Zero(a.Total.Asset)
	case elapsed >= duration:
		return a.Total
	}

	linear := prorate(a.Total.Units-a.Initial.Units, elapsed, duration)
	return types.Tokens(a.Total.Asset, a.Initial.Units+linear)
}

// ReleasableAt returns the quantity withdrawable as of t: vested minus claimed.
func (a *Allocation) ReleasableAt(t time.Time) types.Amount {
	return a.VestedAt(t).Subtract(a.Claimed)
}

// UnvestedAt returns the quantity still locked by the schedule as of t.
func (a *Allocation) UnvestedAt(t time.Time) types.Amount {
	return a.Total.Subtract(a.VestedAt(t))
}

// Remaining returns the quantity not yet claimed, regardless of vesting.
func (a *Allocation) Remaining() types.Amount {
	return a.Total.Subtract(a.Claimed)
}

// StateAt returns the time-driven vesting state as of t.
func (a *Allocation) StateAt(t time.Time) State {
	elapsed := t.Unix() - a.Start.Unix()
	switch {
	case elapsed < int64(a.Cliff/time.Second):
		return StateLocked
	case elapsed >= int64(a.Duration/time.Second):
		return StateFullyVested
	default:
		return StateVesting
	}
}

// InitialTranche computes the quantity unlocked as a lump sum at cliff expiry:
// total * pct / 100, truncating.
func InitialTranche(total types.Amount, pct int) types.Amount {
	return types.Tokens(total.Asset, prorate(total.Units, int64(pct), 100))
}

// prorate computes units * num / den with a 256-bit intermediate so the
// product cannot overflow for any int64 amount and multi-year schedule.
// All inputs must be non-negative and den must be positive.
func prorate(units, num, den int64) int64 {
	v := new(uint256.Int).SetUint64(uint64(units))
	v.Mul(v, uint256.NewInt(uint64(num)))
	v.Div(v, uint256.NewInt(uint64(den)))
	return int64(v.Uint64())
}
