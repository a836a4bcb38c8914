package adminclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CredentialStore keeps the admin secret between invocations
type CredentialStore interface {
	Load() (string, error)
	Save(credential string) error
	Clear() error
}

// FileCredentialStore keeps the secret in a user-only file
type FileCredentialStore struct {
	Path string
}

// DefaultCredentialPath is ~/.config/basstatic/credential
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "basstatic", "credential"), nil
}

// Load returns an empty credential when none is stored
func (s *FileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileCredentialStore) Save(credential string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(credential), 0o600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	return nil
}

func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credential: %w", err)
	}
	return nil
}
