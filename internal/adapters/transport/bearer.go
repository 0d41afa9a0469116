package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/userdir-cli/internal/domain"
	"github.com/bnema/userdir-cli/internal/session"
)

const (
	// DefaultGracePeriod is how long after a login 401/422 responses are
	// treated as a validation race instead of a real expiry. A just-issued
	// token may not be recognized by every backend replica yet.
	DefaultGracePeriod = 5 * time.Second

	// DefaultTeardownDelay gives the caller a moment to surface the error
	// before the session is cleared underneath it.
	DefaultTeardownDelay = 100 * time.Millisecond

	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-Id"
)

// exemptPaths are credential-free endpoints, matched by substring. Their
// failures never tear down the session.
var exemptPaths = []string{"/api/login", "/api/health"}

// Sessions is the slice of the session store the round tripper needs.
type Sessions interface {
	Token() domain.Token
	Logout()
	Subscribe(fn func(session.Event)) error
}

type Options struct {
	Logger        *slog.Logger
	GracePeriod   time.Duration
	TeardownDelay time.Duration
	Now           func() time.Time
	Schedule      func(d time.Duration, fn func())
}

// BearerRoundTripper decorates outgoing requests with the current bearer
// credential and classifies authentication failures on the way back. The
// original response is always returned unchanged; classification only
// controls whether the session is torn down as a side effect.
type BearerRoundTripper struct {
	base          http.RoundTripper
	sessions      Sessions
	logger        *slog.Logger
	gracePeriod   time.Duration
	teardownDelay time.Duration
	now           func() time.Time
	schedule      func(d time.Duration, fn func())

	// lastLogin is the unix-millisecond timestamp of the most recent fresh
	// login, kept current by the session subscription so that concurrent
	// failures all classify against the latest state.
	lastLogin atomic.Int64
}

func NewBearerRoundTripper(base http.RoundTripper, sessions Sessions, opts Options) (*BearerRoundTripper, error) {
	if base == nil {
		base = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.TeardownDelay <= 0 {
		opts.TeardownDelay = DefaultTeardownDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Schedule == nil {
		opts.Schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}

	rt := &BearerRoundTripper{
		base:          base,
		sessions:      sessions,
		logger:        opts.Logger,
		gracePeriod:   opts.GracePeriod,
		teardownDelay: opts.TeardownDelay,
		now:           opts.Now,
		schedule:      opts.Schedule,
	}

	if err := sessions.Subscribe(rt.onSessionChange); err != nil {
		return nil, err
	}

	return rt, nil
}

func (rt *BearerRoundTripper) onSessionChange(evt session.Event) {
	if evt.Kind == session.KindLogin {
		rt.lastLogin.Store(evt.At.UnixMilli())
	}
}

func (rt *BearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if isExempt(req.URL.Path) {
		return rt.base.RoundTrip(req)
	}

	token := rt.sessions.Token()
	requestID := uuid.NewString()

	out := req.Clone(req.Context())
	out.Header.Set(headerRequestID, requestID)
	if token != "" {
		out.Header.Set(headerAuthorization, "Bearer "+string(token))
	} else {
		// The server is authoritative on rejecting an unauthenticated call;
		// the request still goes out.
		rt.logger.Warn("no token available for request",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID,
		)
	}

	resp, err := rt.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity {
		rt.classifyAuthFailure(req, resp.StatusCode, token != "", requestID)
	}

	return resp, nil
}

func (rt *BearerRoundTripper) classifyAuthFailure(req *http.Request, status int, hadToken bool, requestID string) {
	last := rt.lastLogin.Load()

	var elapsed time.Duration
	inGrace := false
	if last != 0 {
		elapsed = rt.now().Sub(time.UnixMilli(last))
		inGrace = elapsed < rt.gracePeriod
	}

	rt.logger.Warn("authentication failure on protected endpoint",
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
		"has_token", hadToken,
		"elapsed_since_login_ms", elapsed.Milliseconds(),
		"in_grace_period", inGrace,
		"request_id", requestID,
	)

	if inGrace {
		// Likely a token validation race right after login; punishing the
		// user with a logout here would strand a valid session.
		return
	}
	if !hadToken {
		return
	}

	rt.schedule(rt.teardownDelay, rt.sessions.Logout)
}

func isExempt(path string) bool {
	for _, exempt := range exemptPaths {
		if strings.Contains(path, exempt) {
			return true
		}
	}
	return false
}
