package domain

// Role tags an account
type Role string

const (
	RoleClient       Role = "CLIENT"
	RoleCollaborator Role = "COLLABORATOR"
	RoleAdmin        Role = "ADMIN"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleCollaborator, RoleAdmin:
		return true
	}
	return false
}

// Account is the identity resolved from the account store
type Account struct {
	ID       string
	IDNumber string
	Name     string
	Email    string
	Phone    string
	Role     Role
}
