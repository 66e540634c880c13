// Package store persists per-account OAuth credentials keyed by a
// user-chosen alias. Two backends exist: a JSON file per alias under the
// gauth config directory (default), and the OS keychain.
package store

import (
	"fmt"
	"strings"
	"time"
)

// Record is the credential set stored for one account alias.
type Record struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
	Scope        string `json:"scope,omitempty"`
}

// Valid reports whether the access token is still usable at now, leaving
// the given safety margin before the recorded expiry.
func (r Record) Valid(now time.Time, skew time.Duration) bool {
	return r.ExpiresAt > now.Add(skew).Unix()
}

// HasRefreshToken reports whether the record can mint new access tokens
// without user interaction.
func (r Record) HasRefreshToken() bool {
	return r.RefreshToken != ""
}

// Store persists credential records. Load treats missing, unreadable and
// corrupt records identically: the record is absent and the caller has to
// re-authenticate. Save replaces the record for the alias wholesale.
type Store interface {
	Load(alias string) (Record, bool)
	Save(alias string, rec Record) error
	Aliases() ([]string, error)
	Delete(alias string) error
}

// Backend names accepted by New and the --token-storage flag.
const (
	BackendFile     = "file"
	BackendKeychain = "keychain"
)

// New returns the store for the given backend name. An empty name selects
// the file backend.
func New(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(dir), nil
	case BackendKeychain:
		return NewKeyringStore(), nil
	default:
		return nil, fmt.Errorf("unknown token storage backend %q (expected %q or %q)", backend, BackendFile, BackendKeychain)
	}
}

// validAlias rejects names that would escape the store's namespace when
// used as a file name or keychain account.
func validAlias(alias string) bool {
	if alias == "" || strings.HasPrefix(alias, ".") {
		return false
	}
	return !strings.ContainsAny(alias, `/\`)
}
