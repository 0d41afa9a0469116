package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditDraftNeverPrefillsPassword(t *testing.T) {
	t.Parallel()

	draft := NewEditDraft(ManagedUser{ID: 7, Email: "a@x.com", Role: RoleAdmin})

	assert.Equal(t, UserID(7), draft.TargetID)
	assert.Equal(t, "a@x.com", draft.Email)
	assert.Equal(t, RoleAdmin, draft.Role)
	assert.Empty(t, draft.Password)
	assert.True(t, draft.Active())
}

func TestDiffUnchangedDraftIsEmpty(t *testing.T) {
	t.Parallel()

	original := ManagedUser{ID: 7, Email: "a@x.com", Role: RoleUser}
	draft := NewEditDraft(original)

	assert.True(t, draft.Diff(original).Empty())
}

func TestDiffIncludesOnlyChangedFields(t *testing.T) {
	t.Parallel()

	original := ManagedUser{ID: 7, Email: "a@x.com", Role: RoleUser}
	draft := NewEditDraft(original)
	draft.Email = "b@x.com"

	patch := draft.Diff(original)
	require.NotNil(t, patch.Email)
	assert.Equal(t, "b@x.com", *patch.Email)
	assert.Nil(t, patch.Password)
	assert.Nil(t, patch.Role)
}

func TestDiffIncludesNonEmptyPasswordEvenWhenRestUnchanged(t *testing.T) {
	t.Parallel()

	original := ManagedUser{ID: 7, Email: "a@x.com", Role: RoleUser}
	draft := NewEditDraft(original)
	draft.Password = "new-secret"

	patch := draft.Diff(original)
	require.NotNil(t, patch.Password)
	assert.Equal(t, "new-secret", *patch.Password)
	assert.Nil(t, patch.Email)
	assert.Nil(t, patch.Role)
}

func TestDiffOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	original := ManagedUser{ID: 7, Email: "a@x.com", Role: RoleUser}
	draft := EditDraft{TargetID: 7}

	assert.True(t, draft.Diff(original).Empty())
}

func TestDiffRoleChange(t *testing.T) {
	t.Parallel()

	original := ManagedUser{ID: 7, Email: "a@x.com", Role: RoleUser}
	draft := NewEditDraft(original)
	draft.Role = RoleAdmin

	patch := draft.Diff(original)
	require.NotNil(t, patch.Role)
	assert.Equal(t, RoleAdmin, *patch.Role)
	assert.False(t, patch.Empty())
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}
