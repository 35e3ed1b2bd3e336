package vesting

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("vesting: not found")
	ErrInvalidInput = errors.New("vesting: invalid input")
	ErrUnauthorized = errors.New("vesting: unauthorized")

	// Argument errors
	ErrInvalidBeneficiary   = errors.New("vesting: invalid beneficiary")
	ErrCliffExceedsDuration = errors.New("vesting: cliff exceeds duration")
	ErrInvalidInitialPct    = errors.New("vesting: initial percentage out of range")
	ErrInvalidAmount        = errors.New("vesting: invalid amount")
	ErrAssetMismatch        = errors.New("vesting: amount asset does not match vault")

	// Custody errors
	ErrInsufficientAllowance = errors.New("vesting: custody allowance too low")
	ErrInsufficientCustody   = errors.New("vesting: ledger custody balance too low")
	ErrTransferFailed        = errors.New("vesting: custody transfer failed")

	// Allocation errors
	ErrAllocationNotFound = errors.New("vesting: allocation not found")

	// Store errors
	ErrStoreNotReady   = errors.New("vesting: store not ready")
	ErrStoreClosed     = errors.New("vesting: store is closed")
	ErrMigrationFailed = errors.New("vesting: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("vesting: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAllocationNotFound)
}

// IsPrecondition returns true if the error is an argument, authorization, or
// pre-authorization failure: the operation performed no state change and the
// caller can correct the input and retry.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidBeneficiary) ||
		errors.Is(err, ErrCliffExceedsDuration) ||
		errors.Is(err, ErrInvalidInitialPct) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrAssetMismatch) ||
		errors.Is(err, ErrInsufficientAllowance) ||
		errors.Is(err, ErrInsufficientCustody)
}

// IsCustodyError returns true if the error came from the asset custody
// collaborator. These are surfaced synchronously and never retried
// internally.
func IsCustodyError(err error) bool {
	return errors.Is(err, ErrInsufficientAllowance) ||
		errors.Is(err, ErrInsufficientCustody) ||
		errors.Is(err, ErrTransferFailed)
}
