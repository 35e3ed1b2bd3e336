package extension

import (
	"github.com/xraph/grove"

	vesting "github.com/xraph/vesting"
	"github.com/xraph/vesting/custody"
	"github.com/xraph/vesting/plugin"
	"github.com/xraph/vesting/store"
)

// Option configures the Vesting Forge extension.
type Option func(*Extension)

// WithStore sets the store for the vesting ledger.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithVault sets the token vault the ledger moves funds through.
func WithVault(v custody.Vault) Option {
	return func(e *Extension) {
		e.vault = v
	}
}

// WithLedgerOption passes a vesting.Option through to the underlying ledger.
func WithLedgerOption(opt vesting.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a vesting plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, vesting.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithOwner sets the identity allowed to issue and revoke grants.
func WithOwner(owner string) Option {
	return func(e *Extension) { e.config.Owner = owner }
}

// WithAsset sets the token symbol backing the default in-memory vault.
func WithAsset(asset string) Option {
	return func(e *Extension) { e.config.Asset = asset }
}

// WithCustodyAccount sets the vault account that holds unreleased tokens.
func WithCustodyAccount(account string) Option {
	return func(e *Extension) { e.config.CustodyAccount = account }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithGroveDB supplies a grove database for the store. The backend is chosen
// by the grove_driver config key ("postgres", "sqlite" or "mongo").
// Ignored when WithStore was also called.
func WithGroveDB(db *grove.DB) Option {
	return func(e *Extension) { e.groveDB = db }
}
