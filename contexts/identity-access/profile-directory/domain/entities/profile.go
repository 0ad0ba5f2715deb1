package entities

import "time"

// Profile is the public identity card for one principal.
type Profile struct {
	Principal string    `json:"principal"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CommitSeq uint64    `json:"commit_seq"`
}
