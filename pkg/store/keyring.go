package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "gauth"
	// Keychains cannot enumerate entries, so the known aliases live in a
	// dedicated index entry. The leading dot keeps it out of the alias
	// namespace (validAlias rejects it).
	keyringIndexKey = ".aliases"
)

// KeyringStore keeps records in the OS keychain via the Secret Service /
// Keychain / Credential Manager APIs. Selected with --token-storage keychain.
type KeyringStore struct {
	service string
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService}
}

func (s *KeyringStore) Load(alias string) (Record, bool) {
	if !validAlias(alias) {
		return Record{}, false
	}
	secret, err := keyring.Get(s.service, alias)
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal([]byte(secret), &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

func (s *KeyringStore) Save(alias string, rec Record) error {
	if !validAlias(alias) {
		return fmt.Errorf("invalid account alias %q", alias)
	}
	content, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := keyring.Set(s.service, alias, string(content)); err != nil {
		return fmt.Errorf("failed to store record in keychain: %w", err)
	}
	return s.updateIndex(alias, true)
}

func (s *KeyringStore) Aliases() ([]string, error) {
	return s.readIndex(), nil
}

func (s *KeyringStore) Delete(alias string) error {
	if !validAlias(alias) {
		return fmt.Errorf("invalid account alias %q", alias)
	}
	if err := keyring.Delete(s.service, alias); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete record from keychain: %w", err)
	}
	return s.updateIndex(alias, false)
}

// readIndex returns the alias index, treating a missing or corrupt index as
// empty.
func (s *KeyringStore) readIndex() []string {
	secret, err := keyring.Get(s.service, keyringIndexKey)
	if err != nil {
		return nil
	}
	var aliases []string
	if err := json.Unmarshal([]byte(secret), &aliases); err != nil {
		return nil
	}
	return aliases
}

func (s *KeyringStore) updateIndex(alias string, present bool) error {
	aliases := s.readIndex()
	updated := make([]string, 0, len(aliases)+1)
	for _, a := range aliases {
		if a != alias {
			updated = append(updated, a)
		}
	}
	if present {
		updated = append(updated, alias)
	}
	sort.Strings(updated)
	content, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to marshal alias index: %w", err)
	}
	if err := keyring.Set(s.service, keyringIndexKey, string(content)); err != nil {
		return fmt.Errorf("failed to update alias index: %w", err)
	}
	return nil
}
