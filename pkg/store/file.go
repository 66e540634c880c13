package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const recordSuffix = ".json"

// FileStore keeps one <alias>.json per account under dir. Independent files
// per alias mean concurrent writes for different aliases never touch the
// same data.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory records are stored in.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(alias string) string {
	return filepath.Join(s.dir, alias+recordSuffix)
}

// Load reads the record for alias. A missing, unreadable or unparseable
// file reads as absent; corruption is never fatal here.
func (s *FileStore) Load(alias string) (Record, bool) {
	if !validAlias(alias) {
		return Record{}, false
	}
	content, err := os.ReadFile(s.path(alias))
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(content, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Save replaces the record for alias. The record is written to a temp file
// in the same directory and renamed into place, so a crash mid-write never
// leaves a half-written record under the alias name.
func (s *FileStore) Save(alias string, rec Record) error {
	if !validAlias(alias) {
		return fmt.Errorf("invalid account alias %q", alias)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	content, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, alias+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(alias)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace record: %w", err)
	}
	return nil
}

// Aliases enumerates stored aliases without validating their tokens.
func (s *FileStore) Aliases() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token dir: %w", err)
	}
	var aliases []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordSuffix) {
			continue
		}
		alias := strings.TrimSuffix(name, recordSuffix)
		if validAlias(alias) {
			aliases = append(aliases, alias)
		}
	}
	return aliases, nil
}

// Delete removes the record for alias. Deleting an absent record is not an
// error.
func (s *FileStore) Delete(alias string) error {
	if !validAlias(alias) {
		return fmt.Errorf("invalid account alias %q", alias)
	}
	if err := os.Remove(s.path(alias)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
