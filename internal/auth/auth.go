// Package auth handles the login round-trip and the persisted session. The
// token is opaque to this client; the POS signs it, we just carry it.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Client is the slice of the API client auth needs: one POST plus control
// over the bearer token.
type Client interface {
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	SetToken(token string)
	ClearToken()
}

// User is the authenticated back-office user.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Tenant is the restaurant the user belongs to.
type Tenant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session is everything persisted between runs. Clearing it entirely on
// logout is the contract; no field survives.
type Session struct {
	Token  string `json:"token"`
	User   User   `json:"user"`
	Tenant Tenant `json:"tenant"`
}

// Manager owns the session lifecycle: login, restore from disk, logout.
type Manager struct {
	client  Client
	path    string
	session *Session
}

func NewManager(client Client, sessionPath string) *Manager {
	return &Manager{client: client, path: sessionPath}
}

// Login authenticates against the POS and persists the session. The token
// is attached to the client so every subsequent request carries it.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	raw, err := m.client.Post(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	if session.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	m.client.SetToken(session.Token)
	m.session = &session

	if err := m.persist(&session); err != nil {
		// The session still works for this run; only the restart
		// convenience is lost.
		return &session, fmt.Errorf("persisting session: %w", err)
	}

	return &session, nil
}

// Restore loads a previously persisted session and re-attaches its token.
// A missing or unreadable file just means logging in again.
func (m *Manager) Restore() (*Session, bool) {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		return nil, false
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil || session.Token == "" {
		return nil, false
	}

	m.client.SetToken(session.Token)
	m.session = &session

	return &session, true
}

// Logout clears the token, the in-memory session and the persisted file.
func (m *Manager) Logout() {
	m.client.ClearToken()
	m.session = nil
	os.Remove(m.path)
}

// Current returns the active session, nil when logged out.
func (m *Manager) Current() *Session {
	return m.session
}

func (m *Manager) persist(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, raw, 0o600)
}
