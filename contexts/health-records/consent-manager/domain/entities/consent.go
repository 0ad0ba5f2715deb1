package entities

import "time"

// ConsentGrant is the single consent entry for an (owner, accessor) pair.
// An empty Scope means the grant covers every record type.
type ConsentGrant struct {
	Owner     string     `json:"owner"`
	Accessor  string     `json:"accessor"`
	Purpose   string     `json:"purpose"`
	Scope     []string   `json:"scope"`
	GrantedAt time.Time  `json:"granted_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	Revoked   bool       `json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CommitSeq uint64     `json:"commit_seq"`
}

// CoversType reports whether the grant's scope includes the record type.
// The wildcard "*" asks about any type and matches regardless of scope.
func (g ConsentGrant) CoversType(recordType string) bool {
	if len(g.Scope) == 0 || recordType == "*" || recordType == "" {
		return true
	}
	for _, scoped := range g.Scope {
		if scoped == recordType {
			return true
		}
	}
	return false
}
