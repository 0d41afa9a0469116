package domain

// EditDraft is an in-progress edit of a single managed user. At most one
// draft is active at a time; the password field is write-only and never
// pre-filled from the original account.
type EditDraft struct {
	TargetID UserID
	Email    string
	Password string
	Role     Role
}

func NewEditDraft(u ManagedUser) EditDraft {
	return EditDraft{
		TargetID: u.ID,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func (d EditDraft) Active() bool {
	return d.TargetID != 0
}

// UserPatch is a minimal diff for an update: nil fields are omitted from the
// request entirely.
type UserPatch struct {
	Email    *string
	Password *string
	Role     *Role
}

func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Password == nil && p.Role == nil
}

// Diff computes the minimal patch between the draft and the account it was
// opened from. Email and role are included only when non-empty and changed;
// a password has no stored original, so any non-empty value counts.
func (d EditDraft) Diff(original ManagedUser) UserPatch {
	var patch UserPatch

	if d.Email != "" && d.Email != original.Email {
		email := d.Email
		patch.Email = &email
	}
	if d.Password != "" {
		password := d.Password
		patch.Password = &password
	}
	if d.Role != "" && d.Role != original.Role {
		role := d.Role
		patch.Role = &role
	}

	return patch
}
