package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/userdir-cli/internal/domain"
)

func TestRenderEmptyDirectory(t *testing.T) {
	t.Parallel()

	out := Render(nil)

	assert.Contains(t, out, "Managed Users")
	assert.Contains(t, out, "users: 0")
	assert.Contains(t, out, "No users in the directory.")
}

func TestRenderListsUsersWithRoleAndCreationDate(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 10, 2, 8, 0, 0, 0, time.UTC)
	out := Render([]domain.ManagedUser{
		{ID: 2, Email: "b@x.com", Role: domain.RoleAdmin, CreatedAt: &created},
		{ID: 1, Email: "a@x.com", Role: domain.RoleUser},
	})

	assert.Contains(t, out, "users: 2")
	assert.Contains(t, out, "b@x.com")
	assert.Contains(t, out, "admin")
	assert.Contains(t, out, "created 2024-10-02")
	assert.Contains(t, out, "a@x.com")
}
