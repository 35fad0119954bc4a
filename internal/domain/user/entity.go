package user

import "time"

// User represents a user entity in the domain
type User struct {
	ID             uint
	Name           string
	Email          string
	PasswordHashed string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
// PasswordHashed must already be hashed.
type Patch struct {
	Name           *string
	Email          *string
	PasswordHashed *string
	IsActive       *bool
}

func (p *Patch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Email == nil && p.PasswordHashed == nil && p.IsActive == nil)
}

const (
	MsgUserRegistered = "User successfully registered."
	MsgUserUpdated    = "User updated successfully."
	MsgUserDeleted    = "User deleted successfully"
)
