package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/vesting/id"
)

func TestNew(t *testing.T) {
	i := id.New(id.PrefixAllocation)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixAllocation {
		t.Errorf("expected prefix %q, got %q", id.PrefixAllocation, i.Prefix())
	}
}

func TestNewAllocationID(t *testing.T) {
	got := id.NewAllocationID().String()
	if !strings.HasPrefix(got, "alloc_") {
		t.Errorf("expected prefix %q, got %q", "alloc_", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := id.NewAllocationID()

	parsed, err := id.ParseAllocationID(orig.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", parsed.String(), orig.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Garbage", "not-a-typeid"},
		{"BadSuffix", "alloc_!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Parse(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestParseWithPrefixMismatch(t *testing.T) {
	other := id.New("vlt")
	if _, err := id.ParseAllocationID(other.String()); err == nil {
		t.Error("expected prefix mismatch error")
	}
}

func TestNilID(t *testing.T) {
	var nilID id.ID
	if !nilID.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if nilID.String() != "" {
		t.Errorf("nil ID String: got %q, want empty", nilID.String())
	}
	if nilID.Prefix() != "" {
		t.Errorf("nil ID Prefix: got %q, want empty", nilID.Prefix())
	}
}

func TestTextMarshaling(t *testing.T) {
	orig := id.NewAllocationID()

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var parsed id.ID
	if err := parsed.UnmarshalText(data); err != nil {
		t.Fatal(err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("text round trip: got %q, want %q", parsed.String(), orig.String())
	}
}

func TestSQLValueScan(t *testing.T) {
	orig := id.NewAllocationID()

	v, err := orig.Value()
	if err != nil {
		t.Fatal(err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatal(err)
	}
	if scanned.String() != orig.String() {
		t.Errorf("sql round trip: got %q, want %q", scanned.String(), orig.String())
	}

	var fromNil id.ID
	if err := fromNil.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if !fromNil.IsNil() {
		t.Error("scanning nil should produce the Nil ID")
	}
}

func TestKSortable(t *testing.T) {
	a := id.NewAllocationID().String()
	b := id.NewAllocationID().String()

	// UUIDv7 suffixes generated in sequence must not sort before earlier ones.
	if strings.Compare(a, b) > 0 {
		t.Errorf("expected %q <= %q", a, b)
	}
}
