package entities

import "time"

// AccessGrant is the single live ACL entry for an (owner, accessor) pair.
// Revocation flips Active rather than deleting the row, so the entry always
// reflects the latest committed write for its key.
type AccessGrant struct {
	Owner     string    `json:"owner"`
	Accessor  string    `json:"accessor"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
	CommitSeq uint64    `json:"commit_seq"`
}
