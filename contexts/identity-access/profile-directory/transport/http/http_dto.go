package httptransport

// UpsertProfileRequest is the request body for creating or editing the
// caller's profile.
type UpsertProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ProfileDTO struct {
	Principal string `json:"principal"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CommitSeq uint64 `json:"commit_seq"`
}

type ProfileResponse struct {
	Status string     `json:"status"`
	Data   ProfileDTO `json:"data"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
