// Package session persists authenticated identities between requests,
// keyed by request fingerprint. Backends cover in-memory, Postgres and
// Redis deployments behind a single Store interface.
package session

import "context"

// Record is the persisted state for one authenticated session. Path is
// the identity's location in the credential tree and Hash the credential
// hash it authenticated against, so rotated credentials invalidate the
// session on restore.
type Record struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// Store persists session records keyed by fingerprint.
type Store interface {
	// Get returns the record for key. The bool reports whether a live
	// record was found; expired records count as absent.
	Get(ctx context.Context, key string) (Record, bool, error)

	// Set writes the record for key, replacing any existing one.
	Set(ctx context.Context, key string, record Record) error

	// Delete removes the record for key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
