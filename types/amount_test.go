package types

import (
	"encoding/json"
	"testing"
)

func TestAmountConstructors(t *testing.T) {
	tests := []struct {
		name    string
		amount  Amount
		units   int64
		asset   string
		display string
	}{
		{"Tokens", Tokens("xrp", 1_000_000), 1_000_000, "xrp", "1000000 XRP"},
		{"Uppercase asset normalized", Tokens("USDC", 49), 49, "usdc", "49 USDC"},
		{"Zero", Zero("xrp"), 0, "xrp", "0 XRP"},
		{"Zero uppercase", Zero("PTS"), 0, "pts", "0 PTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.amount.Units != tt.units {
				t.Errorf("Units: got %d, want %d", tt.amount.Units, tt.units)
			}
			if tt.amount.Asset != tt.asset {
				t.Errorf("Asset: got %s, want %s", tt.amount.Asset, tt.asset)
			}
			if tt.amount.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.amount.String(), tt.display)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Amount
		expected Amount
	}{
		{"Add", func() Amount { return Tokens("xrp", 100).Add(Tokens("xrp", 200)) }, Tokens("xrp", 300)},
		{"Subtract", func() Amount { return Tokens("xrp", 500).Subtract(Tokens("xrp", 200)) }, Tokens("xrp", 300)},
		{"Multiply", func() Amount { return Tokens("xrp", 100).Multiply(3) }, Tokens("xrp", 300)},
		{"Divide truncates", func() Amount { return Tokens("xrp", 1000).Divide(3) }, Tokens("xrp", 333)},
		{"Complex", func() Amount {
			return Tokens("xrp", 1000).Add(Tokens("xrp", 500)).Multiply(2).Subtract(Tokens("xrp", 1000))
		}, Tokens("xrp", 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAmountAssetMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for asset mismatch")
		}
	}()

	_ = Tokens("xrp", 100).Add(Tokens("usdc", 100))
}

func TestAmountDivisionByZero(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for division by zero")
		}
	}()

	_ = Tokens("xrp", 100).Divide(0)
}

func TestAmountComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Amount
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", Tokens("xrp", 100), Tokens("xrp", 100), false, false, true},
		{"Less", Tokens("xrp", 50), Tokens("xrp", 100), true, false, false},
		{"Greater", Tokens("xrp", 200), Tokens("xrp", 100), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestAmountMinMax(t *testing.T) {
	a := Tokens("xrp", 50)
	b := Tokens("xrp", 100)

	if got := a.Min(b); !got.Equal(a) {
		t.Errorf("Min: got %v, want %v", got, a)
	}
	if got := a.Max(b); !got.Equal(b) {
		t.Errorf("Max: got %v, want %v", got, b)
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	in := Tokens("usdc", 12345)

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out Amount
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip: got %v, want %v", out, in)
	}
}

func TestSum(t *testing.T) {
	got := Sum(Tokens("xrp", 100), Tokens("xrp", 200), Tokens("xrp", 300))
	if !got.Equal(Tokens("xrp", 600)) {
		t.Errorf("Sum: got %v, want 600 XRP", got)
	}

	if !Sum().IsZero() {
		t.Error("Sum of nothing should be zero")
	}
}
