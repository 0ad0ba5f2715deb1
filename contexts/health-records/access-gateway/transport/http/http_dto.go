package httptransport

// RecordDTO is the wire form of a released record.
type RecordDTO struct {
	RecordID    string `json:"record_id"`
	Owner       string `json:"owner"`
	ContentRef  string `json:"content_ref"`
	RecordType  string `json:"record_type"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	CommitSeq   uint64 `json:"commit_seq"`
}

type CheckAuthorizationResponse struct {
	Status string `json:"status"`
	Data   struct {
		Owner      string `json:"owner"`
		Accessor   string `json:"accessor"`
		RecordType string `json:"record_type"`
		Authorized bool   `json:"authorized"`
	} `json:"data"`
}

type AuthorizedRecordsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Owner   string      `json:"owner"`
		Records []RecordDTO `json:"records"`
	} `json:"data"`
}

type AuditEventDTO struct {
	EventID        string `json:"event_id"`
	Accessor       string `json:"accessor"`
	Subject        string `json:"subject"`
	CommittedAt    string `json:"committed_at"`
	SequenceNumber uint64 `json:"sequence_number"`
}

type EmergencyAccessResponse struct {
	Status string `json:"status"`
	Data   struct {
		AuditEvent AuditEventDTO `json:"audit_event"`
		Records    []RecordDTO   `json:"records"`
	} `json:"data"`
}

type AuditTrailResponse struct {
	Status string `json:"status"`
	Data   struct {
		Subject string          `json:"subject"`
		Events  []AuditEventDTO `json:"events"`
	} `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
