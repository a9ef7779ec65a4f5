package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/auth"
)

func loginServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds["password"] != "rahasia" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"status": "error", "message": "invalid credentials",
			})

			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"token":  "tok-123",
				"user":   map[string]any{"id": 7, "name": "Admin", "email": creds["email"], "role": "admin"},
				"tenant": map[string]any{"id": 1, "name": "Warung Makmur"},
			},
		})
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]string{"auth": r.Header.Get("Authorization")},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestManager_LoginPersistsAndAttachesToken(t *testing.T) {
	srv := loginServer(t)
	client := api.New(srv.URL)
	path := filepath.Join(t.TempDir(), "session.json")

	m := auth.NewManager(client, path)

	session, err := m.Login(context.Background(), "admin@warung.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, "Warung Makmur", session.Tenant.Name)
	assert.Equal(t, "admin", session.User.Role)
	require.FileExists(t, path)

	// The token rides on the next request.
	raw, err := client.Get(context.Background(), "/whoami", nil)
	require.NoError(t, err)

	var echo map[string]string
	require.NoError(t, json.Unmarshal(raw, &echo))
	assert.Equal(t, "Bearer tok-123", echo["auth"])
}

func TestManager_LoginRejectedLeavesNoSession(t *testing.T) {
	srv := loginServer(t)
	client := api.New(srv.URL)
	path := filepath.Join(t.TempDir(), "session.json")

	m := auth.NewManager(client, path)

	_, err := m.Login(context.Background(), "admin@warung.id", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Nil(t, m.Current())
	assert.NoFileExists(t, path)
}

func TestManager_RestoreRoundTrip(t *testing.T) {
	srv := loginServer(t)
	path := filepath.Join(t.TempDir(), "session.json")

	first := auth.NewManager(api.New(srv.URL), path)
	_, err := first.Login(context.Background(), "admin@warung.id", "rahasia")
	require.NoError(t, err)

	// A fresh process restores from the file alone.
	client := api.New(srv.URL)
	second := auth.NewManager(client, path)

	session, ok := second.Restore()
	require.True(t, ok)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, int64(7), session.User.ID)

	raw, err := client.Get(context.Background(), "/whoami", nil)
	require.NoError(t, err)

	var echo map[string]string
	require.NoError(t, json.Unmarshal(raw, &echo))
	assert.Equal(t, "Bearer tok-123", echo["auth"])
}

func TestManager_RestoreMissingFile(t *testing.T) {
	m := auth.NewManager(api.New("http://localhost:0"), filepath.Join(t.TempDir(), "absent.json"))

	session, ok := m.Restore()
	assert.False(t, ok)
	assert.Nil(t, session)
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	srv := loginServer(t)
	client := api.New(srv.URL)
	path := filepath.Join(t.TempDir(), "session.json")

	m := auth.NewManager(client, path)
	_, err := m.Login(context.Background(), "admin@warung.id", "rahasia")
	require.NoError(t, err)

	m.Logout()

	assert.Nil(t, m.Current())
	assert.NoFileExists(t, path)

	raw, err := client.Get(context.Background(), "/whoami", nil)
	require.NoError(t, err)

	var echo map[string]string
	require.NoError(t, json.Unmarshal(raw, &echo))
	assert.Empty(t, echo["auth"], "cleared token must remove the header, not blank it")
}
