package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/vesting/types"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery so emitting an event walks only the plugins
// that implement the corresponding hook.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onIssued            []OnIssued
	onReleased          []OnReleased
	onRevoked           []OnRevoked
	onReleasableChecked []OnReleasableChecked
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnIssued); ok {
		r.onIssued = append(r.onIssued, v)
	}
	if v, ok := p.(OnReleased); ok {
		r.onReleased = append(r.onReleased, v)
	}
	if v, ok := p.(OnRevoked); ok {
		r.onRevoked = append(r.onRevoked, v)
	}
	if v, ok := p.(OnReleasableChecked); ok {
		r.onReleasableChecked = append(r.onReleasableChecked, v)
	}

	return nil
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitIssued emits an issuance event.
func (r *Registry) EmitIssued(ctx context.Context, alloc interface{}) {
	r.mu.RLock()
	plugins := r.onIssued
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnIssued(ctx, alloc)
		}); err != nil {
			r.logger.Warn("plugin OnIssued failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReleased emits a release event for one allocation.
func (r *Registry) EmitReleased(ctx context.Context, beneficiary string, amount, remaining types.Amount) {
	r.mu.RLock()
	plugins := r.onReleased
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReleased(ctx, beneficiary, amount, remaining)
		}); err != nil {
			r.logger.Warn("plugin OnReleased failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitRevoked emits a revocation event.
func (r *Registry) EmitRevoked(ctx context.Context, beneficiary string, total, returned types.Amount) {
	r.mu.RLock()
	plugins := r.onRevoked
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnRevoked(ctx, beneficiary, total, returned)
		}); err != nil {
			r.logger.Warn("plugin OnRevoked failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReleasableChecked emits a read-path event for a releasable query.
func (r *Registry) EmitReleasableChecked(ctx context.Context, beneficiary string, releasable types.Amount) {
	r.mu.RLock()
	plugins := r.onReleasableChecked
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReleasableChecked(ctx, beneficiary, releasable)
		}); err != nil {
			r.logger.Warn("plugin OnReleasableChecked failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the vesting pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
