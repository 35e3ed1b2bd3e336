// Package types provides common types used across Vesting.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Amount represents a token quantity in the asset's smallest unit.
// All arithmetic is integer-only — no floating point.
//
// Examples:
//   - Tokens("xrp", 1_000_000) = 1 XRP (6 decimal places)
//   - Tokens("usdc", 49_000_000) = 49 USDC (6 decimal places)
//   - Tokens("pts", 100) = 100 PTS (0 decimal places)
type Amount struct {
	Units int64  `json:"units"` // Smallest unit of the asset
	Asset string `json:"asset"` // Lowercase asset symbol: "xrp", "usdc", ...
}

// Tokens creates an Amount of the given asset in smallest units.
func Tokens(asset string, units int64) Amount {
	return Amount{Units: units, Asset: strings.ToLower(asset)}
}

// Zero returns a zero Amount of the specified asset.
func Zero(asset string) Amount { return Amount{Units: 0, Asset: strings.ToLower(asset)} }

// Arithmetic operations

// Add adds two Amounts. Panics if assets don't match.
func (a Amount) Add(other Amount) Amount {
	a.assertSameAsset(other)
	return Amount{Units: a.Units + other.Units, Asset: a.Asset}
}

// Subtract subtracts another Amount. Panics if assets don't match.
func (a Amount) Subtract(other Amount) Amount {
	a.assertSameAsset(other)
	return Amount{Units: a.Units - other.Units, Asset: a.Asset}
}

// Multiply multiplies the Amount by a scalar quantity.
func (a Amount) Multiply(qty int64) Amount {
	return Amount{Units: a.Units * qty, Asset: a.Asset}
}

// Divide divides the Amount by a divisor. Uses integer division.
func (a Amount) Divide(divisor int64) Amount {
	if divisor == 0 {
		panic("amount: division by zero")
	}
	return Amount{Units: a.Units / divisor, Asset: a.Asset}
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a.Units == 0 }

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool { return a.Units > 0 }

// IsNegative returns true if the amount is less than zero.
func (a Amount) IsNegative() bool { return a.Units < 0 }

// Equal returns true if both Amounts are equal (same units and asset).
func (a Amount) Equal(other Amount) bool {
	return a.Units == other.Units && a.Asset == other.Asset
}

// LessThan returns true if this Amount is less than other. Panics if assets don't match.
func (a Amount) LessThan(other Amount) bool {
	a.assertSameAsset(other)
	return a.Units < other.Units
}

// GreaterThan returns true if this Amount is greater than other. Panics if assets don't match.
func (a Amount) GreaterThan(other Amount) bool {
	a.assertSameAsset(other)
	return a.Units > other.Units
}

// Min returns the smaller of two Amounts. Panics if assets don't match.
func (a Amount) Min(other Amount) Amount {
	a.assertSameAsset(other)
	if a.Units < other.Units {
		return a
	}
	return other
}

// Max returns the larger of two Amounts. Panics if assets don't match.
func (a Amount) Max(other Amount) Amount {
	a.assertSameAsset(other)
	if a.Units > other.Units {
		return a
	}
	return other
}

// SameAsset reports whether both Amounts are denominated in the same asset.
func (a Amount) SameAsset(other Amount) bool {
	return a.Asset == other.Asset
}

// String returns a human-readable string: "<units> <ASSET>".
// Amounts are kept in smallest units; display-side decimal placement is the
// caller's concern since asset decimal conventions are not tracked here.
func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.Units, strings.ToUpper(a.Asset))
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Units   int64  `json:"units"`
		Asset   string `json:"asset"`
		Display string `json:"display"`
	}{
		Units:   a.Units,
		Asset:   a.Asset,
		Display: a.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. It accepts both the canonical
// {units, asset} object and the marshaled form with a display field.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw struct {
		Units int64  `json:"units"`
		Asset string `json:"asset"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Units = raw.Units
	a.Asset = strings.ToLower(raw.Asset)
	return nil
}

// assertSameAsset panics if assets don't match.
func (a Amount) assertSameAsset(other Amount) {
	if a.Asset != other.Asset {
		panic(fmt.Sprintf("amount: asset mismatch: %s != %s", a.Asset, other.Asset))
	}
}

// Sum calculates the sum of multiple Amounts. All must be the same asset.
func Sum(values ...Amount) Amount {
	if len(values) == 0 {
		return Amount{}
	}

	result := values[0]
	for i := 1; i < len(values); i++ {
		result = result.Add(values[i])
	}
	return result
}
