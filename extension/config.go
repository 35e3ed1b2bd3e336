package extension

import vesting "github.com/xraph/vesting"

// Config holds the Vesting extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.vesting" or "vesting" keys).
type Config struct {
	// Owner is the identity allowed to issue and revoke grants.
	Owner string `json:"owner" mapstructure:"owner" yaml:"owner"`

	// Asset is the token symbol backing the default in-memory vault
	// (default: "token"). Ignored when a vault is supplied programmatically.
	Asset string `json:"asset" mapstructure:"asset" yaml:"asset"`

	// CustodyAccount is the vault account that holds unreleased tokens
	// (default: vesting.DefaultCustodyAccount).
	CustodyAccount string `json:"custody_account" mapstructure:"custody_account" yaml:"custody_account"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// GroveDriver selects the store backend constructed around a grove.DB
	// supplied via WithGroveDB: "postgres", "sqlite" or "mongo".
	GroveDriver string `json:"grove_driver" mapstructure:"grove_driver" yaml:"grove_driver"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Asset:          "token",
		CustodyAccount: vesting.DefaultCustodyAccount,
	}
}
