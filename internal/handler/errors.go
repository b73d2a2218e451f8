package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgOpenCaseFailed   = "Failed to open case"
	ErrMsgBuyItemFailed    = "Failed to buy item"
	ErrMsgSellItemsFailed  = "Failed to sell items"
	ErrMsgClaimDailyFailed = "Failed to claim daily reward"
)
