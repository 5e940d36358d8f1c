package models

type Role string

const (
	RoleRider   Role = "rider"
	RoleDriver  Role = "driver"
	RoleAgency  Role = "agency"
	RoleScanner Role = "scanner"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
	// AgencyID is the driver/agency a scanner validates tickets for.
	AgencyID string `json:"agencyId,omitempty"`
}

// Ref copies the user into a booking passenger reference.
func (u User) Ref() PassengerRef {
	return PassengerRef{ID: u.ID, Name: u.Name, Phone: u.Phone, Email: u.Email}
}

// UserSummary is the public view of a user nested in hydrated responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Phone: u.Phone, Role: u.Role}
}
