// Package observability provides a metrics extension for Vesting that records
// lifecycle event counts and released token volumes.
package observability

import (
	"context"

	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/plugin"
	"github.com/xraph/vesting/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnInit              = (*MetricsExtension)(nil)
	_ plugin.OnIssued            = (*MetricsExtension)(nil)
	_ plugin.OnReleased          = (*MetricsExtension)(nil)
	_ plugin.OnRevoked           = (*MetricsExtension)(nil)
	_ plugin.OnReleasableChecked = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a vesting plugin to automatically track grant metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Grant metrics
	GrantsIssued  Counter
	GrantsRevoked Counter
	GrantTotal    Histogram
	GrantInitial  Histogram

	// Release metrics
	Releases       Counter
	ReleasedAmount Histogram

	// Revoke metrics
	RevokedReturned Histogram

	// Read-path metrics
	ReleasableChecks Counter
	ReleasableAmount Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Grant metrics
		GrantsIssued:  factory.Counter("vesting.grants.issued"),
		GrantsRevoked: factory.Counter("vesting.grants.revoked"),
		GrantTotal:    factory.Histogram("vesting.grant.total_units"),
		GrantInitial:  factory.Histogram("vesting.grant.initial_units"),

		// Release metrics
		Releases:       factory.Counter("vesting.releases"),
		ReleasedAmount: factory.Histogram("vesting.release.units"),

		// Revoke metrics
		RevokedReturned: factory.Histogram("vesting.revoke.returned_units"),

		// Read-path metrics
		ReleasableChecks: factory.Counter("vesting.releasable.checks"),
		ReleasableAmount: factory.Histogram("vesting.releasable.units"),

		// Error metrics
		StoreErrors:  factory.Counter("vesting.store.errors"),
		PluginErrors: factory.Counter("vesting.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Allocation lifecycle hooks
// ──────────────────────────────────────────────────

// OnIssued implements plugin.OnIssued.
func (m *MetricsExtension) OnIssued(_ context.Context, alloc interface{}) error {
	m.GrantsIssued.Inc()
	if a, ok := alloc.(*allocation.Allocation); ok {
		m.GrantTotal.Observe(float64(a.Total.Units))
		m.GrantInitial.Observe(float64(a.Initial.Units))
	}
	return nil
}

// OnReleased implements plugin.OnReleased.
func (m *MetricsExtension) OnReleased(_ context.Context, _ string, amount, _ types.Amount) error {
	m.Releases.Inc()
	m.ReleasedAmount.Observe(float64(amount.Units))
	return nil
}

// OnRevoked implements plugin.OnRevoked.
func (m *MetricsExtension) OnRevoked(_ context.Context, _ string, _, returned types.Amount) error {
	m.GrantsRevoked.Inc()
	m.RevokedReturned.Observe(float64(returned.Units))
	return nil
}

// ──────────────────────────────────────────────────
// Read-path hooks
// ──────────────────────────────────────────────────

// OnReleasableChecked implements plugin.OnReleasableChecked.
func (m *MetricsExtension) OnReleasableChecked(_ context.Context, _ string, releasable types.Amount) error {
	m.ReleasableChecks.Inc()
	m.ReleasableAmount.Observe(float64(releasable.Units))
	return nil
}
