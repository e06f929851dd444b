package maestro

import (
	"context"
	"sync"
	"time"
)

// SessionStore is the authoritative in-memory record of who the current user
// is. Exactly one instance exists per running client; every mutation flows
// through its four operations plus the 401 feedback hook the transport layer
// registers on construction.
//
// Invariant: Identity() != nil iff Status() == SessionAuthenticated.
type SessionStore struct {
	api    *Client
	users  *UsersService
	logger Logger
	sink   ActivitySink

	mu        sync.RWMutex
	status    SessionStatus
	identity  *User
	lastError string

	listenerMu   sync.Mutex
	listeners    map[int]func(SessionStatus)
	nextListener int
}

var _ SessionWatcher = (*SessionStore)(nil)

// NewSessionStore builds the session store and registers its 401 hook on the
// client, closing the feedback loop between transport and session state.
func NewSessionStore(api *Client) *SessionStore {
	s := &SessionStore{
		api:       api,
		users:     NewUsersService(api),
		logger:    defLogger{},
		sink:      noopActivitySink{},
		status:    SessionUnresolved,
		listeners: map[int]func(SessionStatus){},
	}

	api.OnUnauthorized(s.handleUnauthorized)

	return s
}

func (s *SessionStore) WithLogger(logger Logger) *SessionStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink registers a consumer for session lifecycle events. Events
// are recorded after the state change they describe has been applied.
func (s *SessionStore) WithActivitySink(sink ActivitySink) *SessionStore {
	s.sink = normalizeActivitySink(sink)
	return s
}

// Status returns the current lifecycle state.
func (s *SessionStore) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Identity returns the authenticated profile, nil when anonymous.
func (s *SessionStore) Identity() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// IsAuthenticated reports whether an identity is present.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Status() == SessionAuthenticated
}

// LastError returns the last authentication-related failure message, empty
// when the most recent attempt succeeded.
func (s *SessionStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Subscribe registers a listener invoked on every status change and returns
// its unsubscribe function. Guards use this to re-evaluate gating when a
// logout or background 401 flips the session.
func (s *SessionStore) Subscribe(fn func(SessionStatus)) func() {
	s.listenerMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

// Hydrate resolves the persisted credential into an identity. Call it once at
// application start; it may also be re-run from anonymous to retry after an
// outage. A missing credential resolves anonymous immediately; a present one
// is validated against the identity endpoint.
//
// The credential is only discarded when the backend rejects it for
// authentication reasons; an unreachable backend resolves anonymous but keeps
// the credential so the next start can recover.
func (s *SessionStore) Hydrate(ctx context.Context) {
	if err := s.transition(SessionLoading); err != nil {
		s.logger.Warn("hydrate skipped", "status", s.Status(), "error", err)
		return
	}

	token, err := s.api.Credential()
	if err != nil {
		s.logger.Error("failed to read persisted credential", "error", err)
		s.resolveAnonymous("")
		return
	}

	if token == "" {
		s.resolveAnonymous("")
		return
	}

	user, err := s.users.Me(ctx)
	if err != nil {
		if IsAuthFailure(err) {
			// Credential already cleared and status flipped by the 401 hook;
			// make the resolution explicit for the no-hook (non-401) path.
			s.resolveAnonymous("")
			return
		}

		s.logger.Warn("identity fetch failed during hydrate, keeping credential", "error", err)
		s.resolveAnonymous(ErrorMessage(err, "could not verify session"))
		return
	}

	s.setAuthenticated(user)
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login submits credentials, persists the returned token, and fetches the
// identity. True only when both steps succeed; failures land in LastError and
// never escape as errors.
func (s *SessionStore) Login(ctx context.Context, creds Credentials) bool {
	s.setError("")

	from := s.Status()

	token, err := s.users.Login(ctx, creds)
	if err != nil {
		s.fail("login", err, "login failed")
		s.record(ctx, ActivityEventLoginFailure, from, s.Status(), map[string]any{
			"username": creds.Username,
			"reason":   s.LastError(),
		})
		return false
	}

	if err := s.api.StoreCredential(token.AccessToken); err != nil {
		s.fail("login", err, "login failed")
		return false
	}

	user, err := s.users.Me(ctx)
	if err != nil {
		s.fail("login", err, "login failed")
		return false
	}

	s.setAuthenticated(user)
	s.record(ctx, ActivityEventLoginSuccess, from, SessionAuthenticated, nil)
	return true
}

// Register creates an account then logs in with the supplied email/password.
// A registration success combined with a login failure surfaces as false with
// whatever error Login set.
func (s *SessionStore) Register(ctx context.Context, payload RegisterPayload) bool {
	s.setError("")

	if _, err := s.users.Register(ctx, payload); err != nil {
		s.fail("register", err, "registration failed")
		return false
	}

	s.record(ctx, ActivityEventRegisterSuccess, s.Status(), s.Status(), map[string]any{
		"username": payload.Username,
	})

	return s.Login(ctx, Credentials{
		Username: payload.Email,
		Password: payload.Password,
	})
}

// Logout clears the credential and identity synchronously. No network call is
// made; calling it on an anonymous session is a no-op.
func (s *SessionStore) Logout() {
	if err := s.api.ClearCredential(); err != nil {
		s.logger.Error("failed to clear credential on logout", "error", err)
	}

	s.mu.Lock()
	from := s.status
	user := s.identity
	s.identity = nil
	s.lastError = ""
	changed := s.status != SessionAnonymous
	s.status = SessionAnonymous
	s.mu.Unlock()

	if changed {
		s.notify(SessionAnonymous)
		s.recordFor(context.Background(), user, ActivityEventLogout, from, SessionAnonymous, nil)
	}
}

// UpdateProfile sends a profile update and replaces the stored identity with
// the server's returned representation; the response is the sole source of
// truth, nothing is merged locally.
func (s *SessionStore) UpdateProfile(ctx context.Context, update ProfileUpdate) bool {
	s.setError("")

	user, err := s.users.Update(ctx, update)
	if err != nil {
		s.fail("update profile", err, "profile update failed")
		return false
	}

	// A logout or background 401 that landed while the PUT was in flight wins:
	// the response is dropped rather than resurrecting an identity on an
	// anonymous session.
	s.mu.Lock()
	applied := s.status == SessionAuthenticated
	if applied {
		s.identity = user
	}
	s.mu.Unlock()

	if !applied {
		s.logger.Warn("profile update response discarded, session no longer authenticated")
		return true
	}

	s.record(ctx, ActivityEventProfileUpdated, SessionAuthenticated, SessionAuthenticated, nil)
	return true
}

// handleUnauthorized is the transport feedback edge: any 401 anywhere flips
// the session anonymous. The credential itself was already cleared by the
// client before this hook runs.
func (s *SessionStore) handleUnauthorized() {
	s.mu.Lock()
	from := s.status
	user := s.identity
	s.identity = nil
	changed := s.status != SessionAnonymous
	// A 401 can arrive in any state, including before hydration; bypass the
	// transition table rather than fault on the unresolved edge.
	s.status = SessionAnonymous
	s.mu.Unlock()

	if changed {
		s.logger.Info("session invalidated by unauthorized response")
		s.notify(SessionAnonymous)
		s.recordFor(context.Background(), user, ActivityEventInvalidated, from, SessionAnonymous, nil)
	}
}

func (s *SessionStore) setAuthenticated(user *User) {
	s.mu.Lock()
	if !CanTransition(s.status, SessionAuthenticated) {
		s.logger.Warn("irregular session transition", "from", s.status, "to", SessionAuthenticated)
	}
	s.identity = user
	s.lastError = ""
	changed := s.status != SessionAuthenticated
	s.status = SessionAuthenticated
	s.mu.Unlock()

	if changed {
		s.notify(SessionAuthenticated)
	}
}

func (s *SessionStore) resolveAnonymous(message string) {
	s.mu.Lock()
	s.identity = nil
	s.lastError = message
	changed := s.status != SessionAnonymous
	s.status = SessionAnonymous
	s.mu.Unlock()

	if changed {
		s.notify(SessionAnonymous)
	}
}

// transition applies a legality-checked status change without touching
// identity or error fields.
func (s *SessionStore) transition(to SessionStatus) error {
	s.mu.Lock()
	from := s.status
	if !CanTransition(from, to) {
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	changed := from != to
	s.status = to
	s.mu.Unlock()

	if changed {
		s.notify(to)
	}
	return nil
}

func (s *SessionStore) fail(op string, err error, fallback string) {
	message := ErrorMessage(err, fallback)
	s.logger.Error("session operation failed", "op", op, "error", err)
	s.setError(message)
}

func (s *SessionStore) setError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

func (s *SessionStore) record(ctx context.Context, eventType ActivityEventType, from, to SessionStatus, meta map[string]any) {
	s.recordFor(ctx, s.Identity(), eventType, from, to, meta)
}

func (s *SessionStore) recordFor(ctx context.Context, user *User, eventType ActivityEventType, from, to SessionStatus, meta map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		FromStatus: from,
		ToStatus:   to,
		Metadata:   meta,
		OccurredAt: time.Now().UTC(),
	}
	if user != nil {
		event.UserID = user.ID
		event.Username = user.Username
	}

	if err := s.sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink rejected event", "event", eventType, "error", err)
	}
}

func (s *SessionStore) notify(status SessionStatus) {
	s.listenerMu.Lock()
	fns := make([]func(SessionStatus), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn(status)
	}
}
