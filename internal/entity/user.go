package entity

// UserRole is the custom type to enforce enum-like behavior
type UserRole string

func (ur UserRole) String() string {
	return string(ur)
}

const (
	Customer UserRole = "customer"
	Owner    UserRole = "owner"
)

// ValidUserRoles is a set of valid user roles
var ValidUserRoles = map[UserRole]bool{
	Customer: true,
	Owner:    true,
}

// User represents a record in the users collection.
// PasswordHash is persisted with the record but must never leave the backend.
type User struct {
	Id           int      `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email" valid:"email,required"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Role         UserRole `json:"role"`
}

// UserUpdate carries the profile fields a user may change.
// Id and Role are immutable and intentionally absent.
type UserUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email" valid:"email,optional"`
}
