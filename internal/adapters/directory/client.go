package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/userdir-cli/internal/domain"
	"github.com/bnema/userdir-cli/internal/ports"
)

const (
	LoginPath  = "/api/login"
	HealthPath = "/api/health"
	usersPath  = "/api/users"
	mePath     = "/api/me"

	maxResponseBytes = 1 << 20
)

// Client maps directory intents onto the REST API and unwraps its JSON
// envelopes. No caching or retry lives here; that belongs to the engine and
// the transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.Directory = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type LoginResult struct {
	Token domain.Token
	User  domain.ManagedUser
}

type userPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type loginEnvelope struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userEnvelope struct {
	User userPayload `json:"user"`
}

type usersEnvelope struct {
	Users []userPayload `json:"users"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type healthEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var payload loginEnvelope
	if err := c.do(ctx, http.MethodPost, LoginPath, body, &payload); err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if payload.Token == "" {
		return LoginResult{}, errors.New("login response missing token")
	}

	return LoginResult{
		Token: domain.Token(payload.Token),
		User:  payload.User.toDomain(),
	}, nil
}

func (c *Client) Health(ctx context.Context) (string, error) {
	var payload healthEnvelope
	if err := c.do(ctx, http.MethodGet, HealthPath, nil, &payload); err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}

	return payload.Message, nil
}

// Me returns the account behind the current credential, validating it against
// the server in the process.
func (c *Client) Me(ctx context.Context) (domain.ManagedUser, error) {
	var payload userEnvelope
	if err := c.do(ctx, http.MethodGet, mePath, nil, &payload); err != nil {
		return domain.ManagedUser{}, fmt.Errorf("fetch current user: %w", err)
	}

	return payload.User.toDomain(), nil
}

func (c *Client) List(ctx context.Context) ([]domain.ManagedUser, error) {
	var payload usersEnvelope
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &payload); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.ManagedUser, 0, len(payload.Users))
	for _, u := range payload.Users {
		users = append(users, u.toDomain())
	}

	return users, nil
}

func (c *Client) Create(ctx context.Context, email, password string, role domain.Role) (domain.ManagedUser, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"role":     string(role),
	}

	var payload userEnvelope
	if err := c.do(ctx, http.MethodPost, usersPath, body, &payload); err != nil {
		return domain.ManagedUser{}, fmt.Errorf("create user: %w", err)
	}

	return payload.User.toDomain(), nil
}

func (c *Client) Update(ctx context.Context, id domain.UserID, patch domain.UserPatch) (domain.ManagedUser, error) {
	body := struct {
		Email    *string      `json:"email,omitempty"`
		Password *string      `json:"password,omitempty"`
		Role     *domain.Role `json:"role,omitempty"`
	}{
		Email:    patch.Email,
		Password: patch.Password,
		Role:     patch.Role,
	}

	var payload userEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", usersPath, id), body, &payload); err != nil {
		return domain.ManagedUser{}, fmt.Errorf("update user %d: %w", id, err)
	}

	return payload.User.toDomain(), nil
}

func (c *Client) Delete(ctx context.Context, id domain.UserID) error {
	var payload messageEnvelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", usersPath, id), nil, &payload); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url for %s: %w", path, err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeRequestError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeRequestError(resp *http.Response) error {
	reqErr := &domain.RequestError{Status: resp.StatusCode}

	var payload errorEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err == nil {
		reqErr.Message = payload.Error
	}

	return reqErr
}

func (p userPayload) toDomain() domain.ManagedUser {
	return domain.ManagedUser{
		ID:        domain.UserID(p.ID),
		Email:     p.Email,
		Role:      domain.Role(p.Role),
		CreatedAt: parseTimestamp(p.CreatedAt),
	}
}

// parseTimestamp tolerates both RFC 3339 and the RFC 1123 form the API's JSON
// encoder produces for datetimes. An unparseable value degrades to nil rather
// than failing the whole response.
func parseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, http.TimeFormat, time.RFC1123Z} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}

	return nil
}
