// Package auth resolves staff logins to an acting user. Passwords are kept
// in plain text in the configuration.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"library-catalog/config"
	"library-catalog/library"
)

// ErrInvalidCredentials is returned for an unknown user or wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session defaults for the acting user, as issued at login.
const (
	SessionUserID  = "1"
	SessionContact = "email@example.com"
)

type credential struct {
	password string
	role     library.Role
}

// Credentials is the table of known logins.
type Credentials struct {
	users map[string]credential
}

// NewCredentials builds a table from configured users.
func NewCredentials(users map[string]config.UserConfig) (*Credentials, error) {
	c := &Credentials{users: make(map[string]credential, len(users))}
	for name, u := range users {
		role, err := library.ParseRole(u.Role)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", name, err)
		}
		c.users[strings.ToLower(strings.TrimSpace(name))] = credential{password: u.Password, role: role}
	}
	return c, nil
}

// Identity is a resolved login.
type Identity struct {
	Username string
	Role     library.Role
}

// ActingUser turns the identity into the user passed to every Manager call.
func (id Identity) ActingUser() library.User {
	return library.User{
		Name:    id.Username,
		ID:      SessionUserID,
		Contact: SessionContact,
		Role:    id.Role,
	}
}

// Login checks username (case-insensitive) and password.
func (c *Credentials) Login(username, password string) (Identity, error) {
	cred, ok := c.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(cred.password), []byte(password)) != 1 {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: username, Role: cred.role}, nil
}
