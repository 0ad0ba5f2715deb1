package httptransport

// GrantAccessRequest is the request body for setting or clearing a grant.
type GrantAccessRequest struct {
	Accessor string `json:"accessor"`
}

type GrantDTO struct {
	Owner     string `json:"owner"`
	Accessor  string `json:"accessor"`
	Active    bool   `json:"active"`
	UpdatedAt string `json:"updated_at"`
	CommitSeq uint64 `json:"commit_seq"`
}

type GrantMutationResponse struct {
	Status string   `json:"status"`
	Data   GrantDTO `json:"data"`
}

type CheckAccessResponse struct {
	Status string `json:"status"`
	Data   struct {
		Owner    string `json:"owner"`
		Accessor string `json:"accessor"`
		Active   bool   `json:"active"`
	} `json:"data"`
}

type ListAccessorsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Owner     string   `json:"owner"`
		Accessors []string `json:"accessors"`
	} `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
