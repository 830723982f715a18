// Package history persists a ledger of completed generation runs backed by
// SQLite. Each run stores the operation, its input, and the typed result as
// JSON so earlier work can be listed and re-inspected without repeating
// remote calls.
package history
