// Package audithook bridges vesting lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import a
// concrete audit store directly. Callers inject a RecorderFunc adapter that
// bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/xraph/vesting/allocation"
	"github.com/xraph/vesting/plugin"
	"github.com/xraph/vesting/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnIssued            = (*Extension)(nil)
	_ plugin.OnReleased          = (*Extension)(nil)
	_ plugin.OnRevoked           = (*Extension)(nil)
	_ plugin.OnReleasableChecked = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that callers inject the concrete backend
// at wiring time instead of this package importing one.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges vesting lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Allocation lifecycle hooks
// ──────────────────────────────────────────────────

// OnIssued implements plugin.OnIssued.
func (e *Extension) OnIssued(ctx context.Context, alloc interface{}) error {
	a, ok := alloc.(*allocation.Allocation)
	if !ok {
		return nil
	}
	return e.record(ctx, ActionGrantIssued, SeverityInfo, OutcomeSuccess,
		ResourceAllocation, a.ID.String(), CategoryVesting, nil,
		"beneficiary", a.Beneficiary,
		"total", a.Total.String(),
		"initial", a.Initial.String(),
		"cliff_seconds", int64(a.Cliff.Seconds()),
		"duration_seconds", int64(a.Duration.Seconds()),
	)
}

// OnReleased implements plugin.OnReleased.
func (e *Extension) OnReleased(ctx context.Context, beneficiary string, amount, remaining types.Amount) error {
	return e.record(ctx, ActionTokensReleased, SeverityInfo, OutcomeSuccess,
		ResourceBeneficiary, beneficiary, CategoryCustody, nil,
		"beneficiary", beneficiary,
		"amount", amount.String(),
		"remaining", remaining.String(),
	)
}

// OnRevoked implements plugin.OnRevoked.
func (e *Extension) OnRevoked(ctx context.Context, beneficiary string, total, returned types.Amount) error {
	return e.record(ctx, ActionGrantRevoked, SeverityWarning, OutcomeSuccess,
		ResourceBeneficiary, beneficiary, CategoryVesting, nil,
		"beneficiary", beneficiary,
		"total_granted", total.String(),
		"returned", returned.String(),
	)
}

// ──────────────────────────────────────────────────
// Read-path hooks
// ──────────────────────────────────────────────────

// OnReleasableChecked implements plugin.OnReleasableChecked.
// Read-path queries are high volume, so they are audited only when the
// action has been explicitly enabled.
func (e *Extension) OnReleasableChecked(ctx context.Context, beneficiary string, releasable types.Amount) error {
	if e.enabled == nil || !e.enabled[ActionReleasableChecked] {
		return nil
	}
	return e.record(ctx, ActionReleasableChecked, SeverityInfo, OutcomeSuccess,
		ResourceBeneficiary, beneficiary, CategoryAccess, nil,
		"beneficiary", beneficiary,
		"releasable", releasable.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
