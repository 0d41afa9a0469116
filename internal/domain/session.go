package domain

import "time"

// Token is an opaque bearer credential. The session store owns the live copy;
// everything else reads it for the duration of a single request at most.
type Token string

type Identity struct {
	ID    UserID
	Email string
	Role  Role
}

// Session is the process-wide authenticated state. Only login and logout
// transitions mutate it: login sets all three fields, logout clears them.
type Session struct {
	Identity            *Identity
	Token               Token
	LastAuthenticatedAt time.Time
}

func (s Session) Authenticated() bool {
	return s.Identity != nil && s.Token != ""
}
