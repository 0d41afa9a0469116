package session

import (
	"testing"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/userdir-cli/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func signedToken(t *testing.T, subject, email string, role domain.Role) domain.Token {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return domain.Token(token)
}

func TestLoginSetsAllSessionFields(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(evbus.New(), fixedClock{now: now})

	store.Login("tok-1", domain.Identity{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin})

	current := store.Current()
	require.NotNil(t, current.Identity)
	assert.Equal(t, domain.Token("tok-1"), current.Token)
	assert.Equal(t, "admin@example.com", current.Identity.Email)
	assert.Equal(t, now, current.LastAuthenticatedAt)
	assert.True(t, current.Authenticated())
	assert.True(t, store.IsAdmin())
}

func TestLogoutClearsEverything(t *testing.T) {
	t.Parallel()

	store := NewStore(evbus.New(), nil)
	store.Login("tok-1", domain.Identity{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin})

	store.Logout()

	current := store.Current()
	assert.Nil(t, current.Identity)
	assert.Empty(t, current.Token)
	assert.True(t, current.LastAuthenticatedAt.IsZero())
	assert.False(t, store.IsAdmin())
}

func TestSubscriberSeesEveryTransition(t *testing.T) {
	t.Parallel()

	store := NewStore(evbus.New(), nil)

	var events []Event
	require.NoError(t, store.Subscribe(func(evt Event) {
		events = append(events, evt)
	}))

	store.Login("tok-1", domain.Identity{ID: 1, Email: "a@x.com", Role: domain.RoleUser})
	store.Logout()

	require.Len(t, events, 2)
	assert.Equal(t, KindLogin, events[0].Kind)
	require.NotNil(t, events[0].Identity)
	assert.Equal(t, "a@x.com", events[0].Identity.Email)
	assert.Equal(t, KindLogout, events[1].Kind)
	assert.Nil(t, events[1].Identity)
}

func TestRestoreDecodesIdentityAndPublishesRestore(t *testing.T) {
	t.Parallel()

	store := NewStore(evbus.New(), nil)

	var events []Event
	require.NoError(t, store.Subscribe(func(evt Event) {
		events = append(events, evt)
	}))

	token := signedToken(t, "42", "admin@example.com", domain.RoleAdmin)
	require.NoError(t, store.Restore(token))

	identity, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, domain.UserID(42), identity.ID)
	assert.Equal(t, "admin@example.com", identity.Email)
	assert.True(t, store.IsAdmin())

	require.Len(t, events, 1)
	assert.Equal(t, KindRestore, events[0].Kind)
}

func TestRestoreRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	store := NewStore(evbus.New(), nil)

	require.Error(t, store.Restore("not-a-jwt"))
	assert.False(t, store.Current().Authenticated())
}

func TestIdentityFromTokenRejectsNonNumericSubject(t *testing.T) {
	t.Parallel()

	token := signedToken(t, "alice", "a@x.com", domain.RoleUser)

	_, err := IdentityFromToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject")
}

func TestIdentityFromTokenRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	_, err := IdentityFromToken("")
	require.Error(t, err)
}
