package httptransport

// GiveConsentRequest is the request body for creating/overwriting a consent.
type GiveConsentRequest struct {
	Accessor        string   `json:"accessor"`
	Purpose         string   `json:"purpose"`
	DurationSeconds int64    `json:"duration_seconds"`
	ScopeTypes      []string `json:"scope_types,omitempty"`
}

type RevokeConsentRequest struct {
	Accessor string `json:"accessor"`
}

type ConsentDTO struct {
	Owner     string   `json:"owner"`
	Accessor  string   `json:"accessor"`
	Purpose   string   `json:"purpose"`
	Scope     []string `json:"scope"`
	GrantedAt string   `json:"granted_at"`
	ExpiresAt string   `json:"expires_at"`
	Revoked   bool     `json:"revoked"`
	CommitSeq uint64   `json:"commit_seq"`
}

type GiveConsentResponse struct {
	Status string     `json:"status"`
	Data   ConsentDTO `json:"data"`
}

type RevokeConsentResponse struct {
	Status string `json:"status"`
}

type CheckConsentResponse struct {
	Status string `json:"status"`
	Data   struct {
		Owner      string `json:"owner"`
		Accessor   string `json:"accessor"`
		RecordType string `json:"record_type"`
		Valid      bool   `json:"valid"`
	} `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
