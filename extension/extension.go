// Package extension provides the Forge extension adapter for Vesting.
//
// It implements the forge.Extension interface to integrate the vesting
// ledger into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.vesting" or "vesting" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/grove"
	"github.com/xraph/vessel"

	vesting "github.com/xraph/vesting"
	"github.com/xraph/vesting/custody"
	"github.com/xraph/vesting/store"
	"github.com/xraph/vesting/store/memory"
	mongostore "github.com/xraph/vesting/store/mongo"
	pgstore "github.com/xraph/vesting/store/postgres"
	sqlitestore "github.com/xraph/vesting/store/sqlite"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "vesting"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Token vesting ledger with cliff and linear release"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the vesting ledger as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	ledger     *vesting.Ledger
	store      store.Store
	vault      custody.Vault
	groveDB    *grove.DB
	ledgerOpts []vesting.Option
}

// New creates a new Vesting Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ledger returns the underlying vesting ledger.
// This is nil until Register is called.
func (e *Extension) Ledger() *vesting.Ledger { return e.ledger }

// Vault returns the vault the ledger moves funds through.
// This is nil until Register is called.
func (e *Extension) Vault() custody.Vault { return e.vault }

// Register implements [forge.Extension]. It loads configuration,
// initializes the vesting ledger, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.config.Owner == "" {
		return errors.New("vesting: owner is required; set it via WithOwner or the 'owner' config key")
	}

	if e.store == nil {
		s, err := e.buildStore()
		if err != nil {
			return err
		}
		e.store = s
	}

	// Use an in-memory vault if none was provided programmatically.
	if e.vault == nil {
		e.vault = custody.NewMemoryVault(e.config.Asset)
	}

	opts := e.buildLedgerOpts()

	e.ledger = vesting.New(e.store, e.vault, e.config.Owner, opts...)

	return vessel.Provide(fapp.Container(), func() (*vesting.Ledger, error) {
		return e.ledger, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.ledger == nil {
		return errors.New("vesting: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.ledger.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.ledger != nil {
		if err := e.ledger.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("vesting: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildStore constructs the store backend from the resolved config.
// Falls back to the in-memory store when no grove database was supplied.
func (e *Extension) buildStore() (store.Store, error) {
	if e.groveDB == nil {
		return memory.New(), nil
	}

	switch e.config.GroveDriver {
	case "postgres", "pg":
		return pgstore.New(e.groveDB), nil
	case "sqlite":
		return sqlitestore.New(e.groveDB), nil
	case "mongo", "mongodb":
		return mongostore.New(e.groveDB), nil
	case "":
		return nil, errors.New("vesting: grove_driver is required when a grove database is supplied")
	default:
		return nil, fmt.Errorf("vesting: unknown grove_driver %q", e.config.GroveDriver)
	}
}

// buildLedgerOpts constructs vesting.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() []vesting.Option {
	opts := make([]vesting.Option, 0, len(e.ledgerOpts)+1)

	if e.config.CustodyAccount != "" {
		opts = append(opts, vesting.WithCustodyAccount(e.config.CustodyAccount))
	}

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("vesting: configuration is required but not found in config files; " +
				"ensure 'extensions.vesting' or 'vesting' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("vesting: configuration loaded",
		forge.F("owner", e.config.Owner),
		forge.F("asset", e.config.Asset),
		forge.F("custody_account", e.config.CustodyAccount),
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("grove_driver", e.config.GroveDriver),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.vesting" first (namespaced pattern).
	if cm.IsSet("extensions.vesting") {
		if err := cm.Bind("extensions.vesting", &cfg); err == nil {
			e.Logger().Debug("vesting: loaded config from file",
				forge.F("key", "extensions.vesting"),
			)
			return cfg, true
		}
		e.Logger().Warn("vesting: failed to bind extensions.vesting config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "vesting" key.
	if cm.IsSet("vesting") {
		if err := cm.Bind("vesting", &cfg); err == nil {
			e.Logger().Debug("vesting: loaded config from file",
				forge.F("key", "vesting"),
			)
			return cfg, true
		}
		e.Logger().Warn("vesting: failed to bind vesting config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Asset == "" {
		cfg.Asset = defaults.Asset
	}
	if cfg.CustodyAccount == "" {
		cfg.CustodyAccount = defaults.CustodyAccount
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Owner == "" && programmaticConfig.Owner != "" {
		yamlConfig.Owner = programmaticConfig.Owner
	}
	if yamlConfig.Asset == "" && programmaticConfig.Asset != "" {
		yamlConfig.Asset = programmaticConfig.Asset
	}
	if yamlConfig.CustodyAccount == "" && programmaticConfig.CustodyAccount != "" {
		yamlConfig.CustodyAccount = programmaticConfig.CustodyAccount
	}
	if yamlConfig.GroveDriver == "" && programmaticConfig.GroveDriver != "" {
		yamlConfig.GroveDriver = programmaticConfig.GroveDriver
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
