package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgAlreadyClaimed    = "daily reward already claimed"
	ErrMsgUnknownCase       = "unknown case"
	ErrMsgUnknownOffer      = "unknown shop offer"
	ErrMsgOfferExpired      = "shop offer expired"
	ErrMsgUnknownItem       = "item not in inventory"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgSnapshotCorrupt   = "corrupt snapshot"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// ErrInsufficientFunds rejects a spend that exceeds the wallet balance.
	// The operation is aborted with no state change.
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// ErrAlreadyClaimed rejects a second daily claim on the same calendar day.
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	// ErrUnknownCase rejects a reference to a case id not in the catalog.
	ErrUnknownCase = errors.New(ErrMsgUnknownCase)

	// ErrUnknownOffer rejects a reference to an entry id not in the current offer.
	ErrUnknownOffer = errors.New(ErrMsgUnknownOffer)

	// ErrOfferExpired rejects a purchase against an offer from a prior day.
	ErrOfferExpired = errors.New(ErrMsgOfferExpired)

	// ErrUnknownItem marks an inventory id that does not exist.
	ErrUnknownItem = errors.New(ErrMsgUnknownItem)

	// ErrInvalidInput marks malformed command input.
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrSnapshotCorrupt marks a persisted snapshot that failed to decode.
	// Never fatal: the loader falls back to documented defaults.
	ErrSnapshotCorrupt = errors.New(ErrMsgSnapshotCorrupt)
)
