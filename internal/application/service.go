package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/userdir-cli/internal/domain"
	"github.com/bnema/userdir-cli/internal/ports"
)

// Sessions is the slice of the session store the engine needs: the admin
// gate on user management.
type Sessions interface {
	IsAdmin() bool
}

// State is a snapshot of the engine's operation flags and message slots.
// LastError and LastMessage are mutually exclusive; both are cleared at the
// start of every new operation.
type State struct {
	IsLoading   bool
	IsMutating  bool
	LastError   string
	LastMessage string
}

// Service owns the local cache of managed users and sequences create, update
// and delete operations against the directory. The cache is only ever patched
// from server-confirmed state; nothing is inserted speculatively. The
// isLoading/isMutating flags are advisory single-flight gates: an overlapping
// attempt is rejected with domain.ErrOperationInFlight, never queued.
type Service struct {
	directory ports.Directory
	sessions  Sessions
	confirm   ports.Confirmer
	logger    *slog.Logger

	mu          sync.Mutex
	users       []domain.ManagedUser
	draft       domain.EditDraft
	isLoading   bool
	isMutating  bool
	lastError   string
	lastMessage string
}

func NewService(directory ports.Directory, sessions Sessions, confirm ports.Confirmer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		directory: directory,
		sessions:  sessions,
		confirm:   confirm,
		logger:    logger,
	}
}

// LoadAll replaces the whole cache with the server's user list, preserving
// the server-provided order. It is a no-op for non-administrators.
func (s *Service) LoadAll(ctx context.Context) error {
	if !s.sessions.IsAdmin() {
		return nil
	}

	s.mu.Lock()
	if s.isLoading {
		s.mu.Unlock()
		return domain.ErrOperationInFlight
	}
	s.isLoading = true
	s.lastError, s.lastMessage = "", ""
	s.mu.Unlock()

	users, err := s.directory.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		s.logger.Error("load users failed", "error", err)
		s.lastError = statusMessage(err, "Unable to load users right now.")
		return fmt.Errorf("load users: %w", err)
	}

	s.users = users
	return nil
}

// Create validates locally, then asks the directory to create the account and
// prepends the server-confirmed result to the cache.
func (s *Service) Create(ctx context.Context, email, password string, role domain.Role) error {
	s.mu.Lock()
	s.lastError, s.lastMessage = "", ""

	if email == "" || password == "" {
		s.lastError = "Email and password are required."
		s.mu.Unlock()
		return domain.ErrMissingFields
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		s.lastError = `Invalid role. Must be "user" or "admin".`
		s.mu.Unlock()
		return domain.ErrInvalidRole
	}
	if s.isMutating {
		s.mu.Unlock()
		return domain.ErrOperationInFlight
	}
	s.isMutating = true
	s.mu.Unlock()

	created, err := s.directory.Create(ctx, email, password, role)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isMutating = false

	if err != nil {
		s.logger.Error("create user failed", "email", email, "error", err)
		s.lastError = statusMessage(err, "Unable to create user.")
		return fmt.Errorf("create user: %w", err)
	}

	s.insertFront(created)
	s.lastMessage = "User created successfully."
	return nil
}

// StartEdit opens a draft for the given user. The password field starts empty;
// it is write-only and never pre-filled.
func (s *Service) StartEdit(user domain.ManagedUser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = domain.NewEditDraft(user)
	s.lastError, s.lastMessage = "", ""
}

// UpdateDraft overwrites the editable fields of the active draft. Empty
// values are kept as-is and fall out of the diff at save time.
func (s *Service) UpdateDraft(email, password string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.draft.Active() {
		return
	}
	s.draft.Email = email
	s.draft.Password = password
	s.draft.Role = role
}

func (s *Service) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = domain.EditDraft{}
}

// Save sends the minimal diff between the active draft and its original cache
// entry. An unchanged draft never reaches the network.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	draft := s.draft
	if !draft.Active() {
		s.mu.Unlock()
		return nil
	}
	s.lastError, s.lastMessage = "", ""

	original, ok := findUser(s.users, draft.TargetID)
	if !ok {
		// The target vanished from the cache, e.g. deleted concurrently.
		s.lastError = "Unable to find the selected user."
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}

	patch := draft.Diff(original)
	if patch.Empty() {
		s.lastError = "No changes to save."
		s.mu.Unlock()
		return domain.ErrNoChanges
	}

	if s.isMutating {
		s.mu.Unlock()
		return domain.ErrOperationInFlight
	}
	s.isMutating = true
	s.mu.Unlock()

	updated, err := s.directory.Update(ctx, draft.TargetID, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isMutating = false

	if err != nil {
		// Draft and cache stay untouched so the operator can retry or cancel.
		s.logger.Error("update user failed", "id", draft.TargetID, "error", err)
		s.lastError = plainMessage(err, "Unable to update user.")
		return fmt.Errorf("update user %d: %w", draft.TargetID, err)
	}

	s.replace(updated)
	s.lastMessage = "User updated successfully."
	s.draft = domain.EditDraft{}
	return nil
}

// Delete removes a user after an operator confirmation. A declined prompt
// aborts with no further effect.
func (s *Service) Delete(ctx context.Context, id domain.UserID) error {
	s.mu.Lock()
	target, _ := findUser(s.users, id)
	s.mu.Unlock()

	if !s.confirm.Confirm(fmt.Sprintf("Delete user %s?", target.Email)) {
		return nil
	}

	s.mu.Lock()
	s.lastError, s.lastMessage = "", ""
	if s.isMutating {
		s.mu.Unlock()
		return domain.ErrOperationInFlight
	}
	s.isMutating = true
	s.mu.Unlock()

	err := s.directory.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isMutating = false

	if err != nil {
		s.logger.Error("delete user failed", "id", id, "error", err)
		s.lastError = plainMessage(err, "Unable to delete user.")
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.remove(id)
	s.lastMessage = "User deleted successfully."
	if s.draft.TargetID == id {
		s.draft = domain.EditDraft{}
	}
	return nil
}

// Users returns a copy of the cached user list in display order.
func (s *Service) Users() []domain.ManagedUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]domain.ManagedUser, len(s.users))
	copy(users, s.users)
	return users
}

func (s *Service) UserByID(id domain.UserID) (domain.ManagedUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return findUser(s.users, id)
}

func (s *Service) Draft() domain.EditDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draft
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		IsLoading:   s.isLoading,
		IsMutating:  s.isMutating,
		LastError:   s.lastError,
		LastMessage: s.lastMessage,
	}
}

// insertFront prepends a server-confirmed user, evicting any stale entry with
// the same id so the cache never holds duplicates.
func (s *Service) insertFront(user domain.ManagedUser) {
	s.remove(user.ID)
	s.users = append([]domain.ManagedUser{user}, s.users...)
}

func (s *Service) replace(user domain.ManagedUser) {
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = user
		}
	}
}

func (s *Service) remove(id domain.UserID) {
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
}

func findUser(users []domain.ManagedUser, id domain.UserID) (domain.ManagedUser, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.ManagedUser{}, false
}

// statusMessage derives a user-facing error including the HTTP status:
// "Error: <message> (Status: <status-or-Unknown>)". The server's structured
// message wins over the transport error text, which wins over the fallback.
func statusMessage(err error, fallback string) string {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		message := reqErr.Message
		if message == "" {
			message = fallback
		}
		return fmt.Sprintf("Error: %s (Status: %d)", message, reqErr.Status)
	}

	message := fallback
	if err != nil {
		message = err.Error()
	}
	return fmt.Sprintf("Error: %s (Status: Unknown)", message)
}

// plainMessage derives a user-facing error without the status suffix: the
// server's message when present, else the operation-specific fallback.
func plainMessage(err error, fallback string) string {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
