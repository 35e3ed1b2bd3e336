package allocation

import (
	"testing"
	"time"

	"github.com/xraph/vesting/id"
	"github.com/xraph/vesting/types"
)

var start = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// grant returns the reference allocation used throughout: 1000 units,
// 100s cliff, 1000s duration, 10% initial tranche.
func grant() *Allocation {
	total := types.Tokens("xrp", 1000)
	return &Allocation{
		ID:          id.NewAllocationID(),
		Beneficiary: "bene_1",
		Start:       start,
		Cliff:       100 * time.Second,
		Duration:    1000 * time.Second,
		Total:       total,
		Claimed:     types.Zero("xrp"),
		Initial:     InitialTranche(total, 10),
	}
}

func TestInitialTranche(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		pct   int
		want  int64
	}{
		{"Ten percent", 1000, 10, 100},
		{"Truncates", 1001, 10, 100},
		{"Zero percent", 1000, 0, 0},
		{"Full", 1000, 100, 1000},
		{"Odd split", 333, 50, 166},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialTranche(types.Tokens("xrp", tt.total), tt.pct)
			if got.Units != tt.want {
				t.Errorf("got %d, want %d", got.Units, tt.want)
			}
		})
	}
}

func TestVestedAtRegions(t *testing.T) {
	a := grant()

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int64
	}{
		{"Before start", -10 * time.Second, 0},
		{"One second before cliff", 99 * time.Second, 0},
		// At cliff expiry the curve value is initial + (total-initial)*cliff/duration,
		// a step up from zero: 100 + 900*100/1000 = 190.
		{"At cliff", 100 * time.Second, 190},
		{"Mid schedule", 550 * time.Second, 595}, // 100 + 900*550/1000
		{"One second before end", 999 * time.Second, 999}, // 100 + 900*999/1000
		{"At duration", 1000 * time.Second, 1000},
		{"Long after", 5000 * time.Second, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.VestedAt(start.Add(tt.elapsed))
			if got.Units != tt.want {
				t.Errorf("vested at %v: got %d, want %d", tt.elapsed, got.Units, tt.want)
			}
		})
	}
}

// The linear term can truncate to zero right at the cliff, in which case the
// vested amount lands exactly on the initial tranche.
func TestVestedAtCliffTruncatesToInitial(t *testing.T) {
	total := types.Tokens("xrp", 1000)
	a := &Allocation{
		Start:    start,
		Cliff:    1 * time.Second,
		Duration: 1000 * time.Second,
		Total:    total,
		Claimed:  types.Zero("xrp"),
		Initial:  InitialTranche(total, 10),
	}

	got := a.VestedAt(start.Add(1 * time.Second)) // 100 + 900*1/1000 = 100
	if got.Units != 100 {
		t.Errorf("got %d, want 100", got.Units)
	}
}

func TestVestedAtCliffEqualsDuration(t *testing.T) {
	total := types.Tokens("xrp", 1000)
	a := &Allocation{
		Start:    start,
		Cliff:    500 * time.Second,
		Duration: 500 * time.Second,
		Total:    total,
		Claimed:  types.Zero("xrp"),
		Initial:  types.Zero("xrp"),
	}

	if got := a.VestedAt(start.Add(499 * time.Second)); got.Units != 0 {
		t.Errorf("before cliff: got %d, want 0", got.Units)
	}
	// cliff == duration unlocks everything in one step.
	if got := a.VestedAt(start.Add(500 * time.Second)); got.Units != 1000 {
		t.Errorf("at cliff: got %d, want 1000", got.Units)
	}
}

func TestVestedAtZeroDuration(t *testing.T) {
	total := types.Tokens("xrp", 1000)
	a := &Allocation{
		Start:   start,
		Total:   total,
		Claimed: types.Zero("xrp"),
		Initial: types.Zero("xrp"),
	}

	if got := a.VestedAt(start); got.Units != 1000 {
		t.Errorf("zero duration vests immediately: got %d, want 1000", got.Units)
	}
}

func TestVestedAtMonotonic(t *testing.T) {
	a := grant()

	prev := int64(-1)
	for s := -50; s <= 1100; s++ {
		got := a.VestedAt(start.Add(time.Duration(s) * time.Second))
		if got.Units < prev {
			t.Fatalf("vested decreased at %ds: %d < %d", s, got.Units, prev)
		}
		if got.Units > a.Total.Units {
			t.Fatalf("vested exceeds total at %ds: %d", s, got.Units)
		}
		prev = got.Units
	}
}

func TestConservation(t *testing.T) {
	a := grant()
	a.Claimed = types.Tokens("xrp", 150)

	for _, s := range []int{0, 100, 250, 550, 999, 1000, 2000} {
		at := start.Add(time.Duration(s) * time.Second)
		sum := a.Claimed.Add(a.ReleasableAt(at)).Add(a.UnvestedAt(at))
		if !sum.Equal(a.Total) {
			t.Errorf("at %ds: claimed+releasable+unvested = %v, want %v", s, sum, a.Total)
		}
	}
}

func TestReleasableAt(t *testing.T) {
	a := grant()
	a.Claimed = types.Tokens("xrp", 190)

	// Everything vested at this point has been claimed already.
	if got := a.ReleasableAt(start.Add(100 * time.Second)); got.Units != 0 {
		t.Errorf("got %d, want 0", got.Units)
	}
	if got := a.ReleasableAt(start.Add(550 * time.Second)); got.Units != 405 {
		t.Errorf("got %d, want 405", got.Units)
	}
}

func TestStateAt(t *testing.T) {
	a := grant()

	tests := []struct {
		elapsed time.Duration
		want    State
	}{
		{0, StateLocked},
		{99 * time.Second, StateLocked},
		{100 * time.Second, StateVesting},
		{999 * time.Second, StateVesting},
		{1000 * time.Second, StateFullyVested},
	}

	for _, tt := range tests {
		if got := a.StateAt(start.Add(tt.elapsed)); got != tt.want {
			t.Errorf("state at %v: got %s, want %s", tt.elapsed, got, tt.want)
		}
	}
}

// Amounts near the int64 ceiling must not overflow during proration.
func TestVestedAtLargeAmounts(t *testing.T) {
	const fourYears = 4 * 365 * 24 * 3600 * time.Second

	total := types.Tokens("wei", 9_000_000_000_000_000_000)
	a := &Allocation{
		Start:    start,
		Cliff:    0,
		Duration: fourYears,
		Total:    total,
		Claimed:  types.Zero("wei"),
		Initial:  types.Zero("wei"),
	}

	got := a.VestedAt(start.Add(fourYears / 2))
	if got.Units != 4_500_000_000_000_000_000 {
		t.Errorf("got %d, want 4500000000000000000", got.Units)
	}
}
