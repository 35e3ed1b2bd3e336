package audithook

// Action constants for audit events.
const (
	// Grant actions
	ActionGrantIssued  = "grant.issued"
	ActionGrantRevoked = "grant.revoked"

	// Release actions
	ActionTokensReleased = "tokens.released"

	// Read-path actions
	ActionReleasableChecked = "releasable.checked"
)

// Resource constants for audit events.
const (
	ResourceAllocation  = "allocation"
	ResourceBeneficiary = "beneficiary"
)

// Category constants for audit events.
const (
	CategoryVesting = "vesting"
	CategoryCustody = "custody"
	CategoryAccess  = "access"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
