package domain

// ID is used across domain entities.
type ID = string

// Scope restricts a caller to entities of one agency. The zero value is the
// unscoped system caller.
type Scope struct {
	UserID   string `json:"userId,omitempty"`
	Role     string `json:"role,omitempty"`
	AgencyID string `json:"agencyId,omitempty"`
}

// Scoped reports whether the caller is limited to a single agency.
func (s Scope) Scoped() bool {
	return s.AgencyID != ""
}

// Allows reports whether an entity owned by driverID is visible to the caller.
func (s Scope) Allows(driverID string) bool {
	if !s.Scoped() {
		return true
	}
	return s.AgencyID == driverID
}
