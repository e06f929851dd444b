// Package store provides credential stores for the API client: an in-memory
// store, a sealed file store, and a Bun backed SQLite store that also keeps
// local preferences.
package store

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

const credentialsFileName = "credentials.json"

// MemoryStore keeps the credential in process memory. It is the zero-setup
// store used by tests and short-lived programs.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

type credentials struct {
	Token string `json:"token"`
}

// FileStore persists the credential as a 0600 JSON file. The token is sealed
// at rest with a passphrase derived key.
type FileStore struct {
	mu   sync.Mutex
	path string
	box  *SecretBox
}

// NewFileStore builds a file store at path. The passphrase seals the token at
// rest; it must be the same across runs or stored tokens become unreadable.
func NewFileStore(path string, passphrase []byte) *FileStore {
	return &FileStore{
		path: path,
		box:  NewSecretBox(passphrase),
	}
}

// DefaultPath returns the conventional credentials location under the user
// config directory, e.g. ~/.config/maestro/credentials.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "find config directory")
	}
	return filepath.Join(dir, "maestro", credentialsFileName), nil
}

func (f *FileStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "read credentials")
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "parse credentials")
	}

	if creds.Token == "" {
		return "", nil
	}

	blob, err := base64.StdEncoding.DecodeString(creds.Token)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "decode credentials")
	}

	token, err := f.box.Open(blob)
	if err != nil {
		return "", err
	}

	return string(token), nil
}

func (f *FileStore) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	blob, err := f.box.Seal([]byte(token))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(credentials{
		Token: base64.StdEncoding.EncodeToString(blob),
	}, "", "  ")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "marshal credentials")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "create config directory")
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "write credentials")
	}

	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "remove credentials")
	}
	return nil
}
