package entities

import "time"

// Record is an immutable metadata entry referencing externally stored content.
// ContentRef points into the external blob store and is never interpreted or
// rewritten by this module.
type Record struct {
	RecordID    string    `json:"record_id"`
	Owner       string    `json:"owner"`
	ContentRef  string    `json:"content_ref"`
	RecordType  string    `json:"record_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CommitSeq   uint64    `json:"commit_seq"`
}
