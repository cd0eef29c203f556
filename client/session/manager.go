// Package session maintains the authenticated identity and the
// credentials needed to act on its behalf.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"bookbazaar/app/domain"
	"bookbazaar/client/api"
	"bookbazaar/client/credstore"
	"bookbazaar/client/port"
)

// State is the session lifecycle state.
type State string

const (
	// StateUnauthenticated means no token and no identity.
	StateUnauthenticated State = "unauthenticated"
	// StateResolving means a persisted token was found at startup and
	// the identity has not yet been confirmed.
	StateResolving State = "resolving"
	// StateAuthenticated means token and identity are both valid.
	StateAuthenticated State = "authenticated"
)

// Event is published whenever the identity/token pair changes.
// Identity is nil and Token empty after a logout of either kind.
type Event struct {
	Identity *domain.Identity
	Token    string
}

// Subscriber receives identity-changed events.
type Subscriber func(Event)

// Manager owns the single source of truth for who is logged in. All
// mutations are serialized through its operations; consumers read via
// the accessors and react via Subscribe.
type Manager struct {
	api      port.AuthAPI
	store    port.CredentialStore
	notifier port.Notifier
	logger   *slog.Logger

	mu          sync.RWMutex
	state       State
	identity    *domain.Identity
	token       string
	apiKey      string
	subscribers []Subscriber
}

// NewManager creates a session manager in the unauthenticated state.
// Call Resolve once at startup to rehydrate persisted credentials.
func NewManager(authAPI port.AuthAPI, store port.CredentialStore, notifier port.Notifier, logger *slog.Logger) *Manager {
	return &Manager{
		api:      authAPI,
		store:    store,
		notifier: notifier,
		logger:   logger,
		state:    StateUnauthenticated,
	}
}

// Subscribe registers a subscriber for identity-changed events. The
// dependency is an explicit wiring step; there is no unsubscribe since
// client-side stores live for the whole process.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Resolve rehydrates persisted credentials and confirms the identity.
// With no persisted token the manager stays unauthenticated. With a
// token, the manager enters the resolving state until the identity
// fetch settles; any failure there is treated as an invalid session and
// clears the stale credentials silently.
func (m *Manager) Resolve(ctx context.Context) error {
	token, err := m.store.Get(ctx, credstore.KeyToken)
	if err != nil {
		return err
	}

	apiKey, err := m.store.Get(ctx, credstore.KeyAPIKey)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.apiKey = apiKey
	if token == "" {
		m.state = StateUnauthenticated
		m.mu.Unlock()
		return nil
	}
	m.token = token
	m.state = StateResolving
	m.mu.Unlock()

	return m.refreshIdentity(ctx)
}

// Login authenticates with email and password. On acceptance the token
// is persisted and the identity resolved. On rejection or network
// failure nothing is cleared and the error is returned so the calling
// form can keep its state.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.notifier.Error("Login failed", failureDescription(err))
		return err
	}

	m.notifier.Success("Login successful", "Welcome back!")
	return m.adoptToken(ctx, token)
}

// Register creates an account. Same contract as Login.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	token, err := m.api.Register(ctx, username, email, password)
	if err != nil {
		m.notifier.Error("Registration failed", failureDescription(err))
		return err
	}

	m.notifier.Success("Registration successful", "Welcome to BookBazaar!")
	return m.adoptToken(ctx, token)
}

// Logout unconditionally clears the identity, both credentials, and
// their persisted entries. It never contacts the remote service, always
// succeeds, and is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.clearSession(ctx)
	m.notifier.Success("Logged out", "See you soon!")
}

// GenerateAPIKey replaces the API key with a fresh one. Callers are
// expected to hold a token; the server rejects the call otherwise. On
// failure the existing key is left untouched.
func (m *Manager) GenerateAPIKey(ctx context.Context) error {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	key, err := m.api.GenerateAPIKey(ctx, token)
	if err != nil {
		m.notifier.Error("Failed to generate API key", "Please try again")
		return err
	}

	if err := m.store.Set(ctx, credstore.KeyAPIKey, key); err != nil {
		m.logger.Warn("failed to persist api key", "error", err)
	}

	m.mu.Lock()
	m.apiKey = key
	m.mu.Unlock()

	m.notifier.Success("API Key generated", "Your new API key is ready to use")
	return nil
}

// RefreshIdentity re-fetches the identity for the current token. Any
// failure is an invalid-session signal: the session is cleared with
// full logout semantics but without the logout notification.
func (m *Manager) RefreshIdentity(ctx context.Context) error {
	return m.refreshIdentity(ctx)
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Identity returns the current identity, or nil when unauthenticated
func (m *Manager) Identity() *domain.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return nil
	}
	copied := *m.identity
	return &copied
}

// Token returns the current session token, empty when absent
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// APIKey returns the current API key, empty when absent
func (m *Manager) APIKey() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.apiKey
}

// adoptToken stores a freshly issued token and resolves the identity
// behind it. The identity refresh is what moves the state to
// authenticated and publishes the event.
func (m *Manager) adoptToken(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, credstore.KeyToken, token); err != nil {
		m.logger.Warn("failed to persist token", "error", err)
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	return m.refreshIdentity(ctx)
}

func (m *Manager) refreshIdentity(ctx context.Context) error {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" {
		return errors.New("no session token")
	}

	identity, err := m.api.Me(ctx, token)
	if err != nil {
		m.logger.Info("identity refresh failed, clearing session", "error", err)
		m.clearSession(ctx)
		return err
	}

	m.mu.Lock()
	m.identity = identity
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.publish()
	return nil
}

// clearSession is shared by user-initiated and forced logout. It clears
// identity, token, API key, and both persisted entries, then publishes
// the identity loss.
func (m *Manager) clearSession(ctx context.Context) {
	if err := m.store.Delete(ctx, credstore.KeyToken); err != nil {
		m.logger.Warn("failed to remove persisted token", "error", err)
	}
	if err := m.store.Delete(ctx, credstore.KeyAPIKey); err != nil {
		m.logger.Warn("failed to remove persisted api key", "error", err)
	}

	m.mu.Lock()
	m.identity = nil
	m.token = ""
	m.apiKey = ""
	m.state = StateUnauthenticated
	m.mu.Unlock()

	m.publish()
}

// publish delivers the current identity/token pair to all subscribers
func (m *Manager) publish() {
	m.mu.RLock()
	event := Event{Identity: m.identity, Token: m.token}
	subscribers := make([]Subscriber, len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.RUnlock()

	for _, fn := range subscribers {
		fn(event)
	}
}

// failureDescription picks the user-facing description for a failed
// login or registration: the server's message for a rejected request,
// a generic retry suggestion for a network failure.
func failureDescription(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Please try again"
}
