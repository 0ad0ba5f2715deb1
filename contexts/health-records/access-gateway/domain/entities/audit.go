package entities

import "time"

// EmergencyAccessEvent is one committed break-glass access. Events are
// append-only and totally ordered by SequenceNumber; CommittedAt comes from
// the commit substrate, never from the accessor.
type EmergencyAccessEvent struct {
	EventID        string    `json:"event_id"`
	Accessor       string    `json:"accessor"`
	Subject        string    `json:"subject"`
	CommittedAt    time.Time `json:"committed_at"`
	SequenceNumber uint64    `json:"sequence_number"`
}
