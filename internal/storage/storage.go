// Package storage is the persistence gateway: a string-keyed key/value
// contract the engine consults at startup and notifies on every mutation.
// Writes are write-behind: a failed Set is logged and swallowed, and the
// in-memory state stays authoritative for the session.
package storage

import "context"

// Persisted state keys. All engine state serializes to strings under this
// fixed set.
const (
	KeyBalance     = "balance"      // decimal string, e.g. "123.45"
	KeyInventory   = "inventory"    // JSON list of owned items
	KeyLastDaily   = "last-daily"   // calendar day of the last claim
	KeyDailyStreak = "daily-streak" // integer string
	KeyShopItems   = "shop-items"   // JSON list of shop entries
	KeyShopRefresh = "shop-refresh" // calendar day the shop was generated for
)

// Store defines the key/value persistence contract.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
