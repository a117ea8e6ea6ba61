// Package client holds the client-side session state and the route-guard
// policies a frontend applies over it. The session is a typed value rather
// than a pair of loosely-coupled strings, so impossible states (a token
// without a role) cannot be represented as authenticated.
package client

import (
	"encoding/json"
	"os"

	"github.com/ansh-patel-repos/job-listing-portal/internal/model"
)

// Session is the locally persisted copy of {token, role, user}. The zero
// value means "not signed in". Token presence alone is trusted for routing;
// the server remains the authority on every actual data access.
type Session struct {
	Token string            `json:"token"`
	Role  model.Role        `json:"role"`
	User  *model.PublicUser `json:"user,omitempty"`
}

// Authenticated reports whether the session carries a complete credential.
// A token without a role (or vice versa) counts as absent.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Role.Valid()
}

// Store persists the session as a JSON file, the Go analogue of the
// browser's localStorage slot.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted session, or an empty one when nothing has been
// saved yet.
func (st *Store) Load() (Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}

	return s, nil
}

func (st *Store) Save(s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0o600)
}

// Clear discards the credential. This is the whole logout contract on the
// client side.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
