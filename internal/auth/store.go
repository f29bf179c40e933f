package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// TokenKey is the name the token is persisted under
const TokenKey = "auth_token"

// Store persists the bearer token between runs
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in a small JSON file. Writers in other processes are
// serialized through a lock file next to it.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the token file location
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored token, "" when none is stored
func (s *FileStore) Load() (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := s.lock.RLock(); err != nil {
		return "", fmt.Errorf("failed to lock session file: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("failed to parse session file: %w", err)
	}
	return stored[TokenKey], nil
}

// Save writes the token atomically (temp file + rename)
func (s *FileStore) Save(token string) error {
	if token == "" {
		return s.Clear()
	}
	data, err := json.Marshal(map[string]string{TokenKey: token})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.withLock(func() error {
		tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
		if err != nil {
			return fmt.Errorf("failed to create temp session file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write session file: %w", err)
		}
		if err := tmp.Chmod(0600); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to set session file permissions: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("failed to close session file: %w", err)
		}
		if err := os.Rename(tmp.Name(), s.path); err != nil {
			return fmt.Errorf("failed to replace session file: %w", err)
		}
		return nil
	})
}

// Clear removes the stored token
func (s *FileStore) Clear() error {
	return s.withLock(func() error {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	})
}

func (s *FileStore) withLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock session file: %w", err)
	}
	defer s.lock.Unlock()
	return fn()
}

// MemoryStore keeps the token in memory only
type MemoryStore struct {
	token string
	err   error // returned by Save and Clear when set
}

// NewMemoryStore creates a memory store holding token
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) { return m.token, nil }

func (m *MemoryStore) Save(token string) error {
	if m.err != nil {
		return m.err
	}
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	if m.err != nil {
		return m.err
	}
	m.token = ""
	return nil
}

// FailWith makes subsequent writes fail with err
func (m *MemoryStore) FailWith(err error) {
	m.err = err
}
