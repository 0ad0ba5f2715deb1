package httptransport

// AddRecordRequest is the request body for appending a record.
type AddRecordRequest struct {
	ContentRef  string `json:"content_ref"`
	RecordType  string `json:"record_type"`
	Description string `json:"description,omitempty"`
}

type RecordDTO struct {
	RecordID    string `json:"record_id"`
	Owner       string `json:"owner"`
	ContentRef  string `json:"content_ref"`
	RecordType  string `json:"record_type"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	CommitSeq   uint64 `json:"commit_seq"`
}

type AddRecordResponse struct {
	Status string    `json:"status"`
	Data   RecordDTO `json:"data"`
}

type ListRecordsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Owner   string      `json:"owner"`
		Records []RecordDTO `json:"records"`
	} `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
