package apikey

import "time"

// Key is one issued API credential, stored as a SHA-256 hash of the
// opaque key material. Issuance and rotation happen out of band.
type Key struct {
	ID         string
	Hash       string
	Label      string
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// Principal identifies the caller behind a verified API key.
type Principal struct {
	KeyID string
	Label string
}
