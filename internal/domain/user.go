package domain

import "time"

type UserID int64

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ManagedUser is a directory account as confirmed by the server. ID is
// server-assigned and immutable; CreatedAt may be nil when the server omits it.
type ManagedUser struct {
	ID        UserID
	Email     string
	Role      Role
	CreatedAt *time.Time
}
