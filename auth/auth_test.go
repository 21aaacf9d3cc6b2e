package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/config"
	"library-catalog/library"
)

func TestLogin(t *testing.T) {
	creds, err := NewCredentials(config.DefaultUsers())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantRole library.Role
		wantErr  bool
	}{
		{name: "librarian", username: "librarian", password: "libpass", wantRole: library.RoleLibrarian},
		{name: "administrator mixed case", username: "Administrator", password: "adminpass", wantRole: library.RoleAdministrator},
		{name: "wrong password", username: "librarian", password: "adminpass", wantErr: true},
		{name: "unknown user", username: "guest", password: "libpass", wantErr: true},
		{name: "empty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := creds.Login(tt.username, tt.password)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, id.Username)
			assert.Equal(t, tt.wantRole, id.Role)
		})
	}
}

func TestNewCredentialsRejectsUnknownRole(t *testing.T) {
	_, err := NewCredentials(map[string]config.UserConfig{"x": {Password: "p", Role: "janitor"}})
	require.ErrorIs(t, err, library.ErrUnknownRole)
}

func TestActingUser(t *testing.T) {
	u := Identity{Username: "librarian", Role: library.RoleLibrarian}.ActingUser()
	assert.Equal(t, library.User{Name: "librarian", ID: "1", Contact: "email@example.com", Role: library.RoleLibrarian}, u)
}
