// Package cred stores the task-endpoint API token, sealed at rest.
//
// Layout under the snag config dir ($HOME/.config/snag by default):
//
//	token.key    — 32 random bytes, hex-encoded, created once per install
//	token.sealed — secretbox(nonce+ciphertext) of the token, with the key
//	               derived from token.key via HKDF-SHA256
//
// Sealing keeps the token out of casual file greps and backups. It is not a
// defense against an attacker who already has the same filesystem access.
package cred

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the delivery credential.
type Store interface {
	// Read returns the token, or "" if none is stored.
	Read() (string, error)
	Write(token string) error
	Clear() error
}

// FileStore keeps the sealed token on disk.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. An empty dir selects the
// default snag config directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home: %w", err)
		}
		dir = filepath.Join(home, ".config", "snag")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) keyPath() string    { return filepath.Join(s.dir, "token.key") }
func (s *FileStore) sealedPath() string { return filepath.Join(s.dir, "token.sealed") }

// loadKey returns the sealing key, generating the per-install key file
// first when create is set.
func (s *FileStore) loadKey(create bool) (*[keySize]byte, error) {
	raw, err := os.ReadFile(s.keyPath())
	if errors.Is(err, fs.ErrNotExist) && create {
		var seed [32]byte
		if _, err := rand.Read(seed[:]); err != nil {
			return nil, fmt.Errorf("generate key seed: %w", err)
		}
		raw = []byte(hex.EncodeToString(seed[:]))
		if err := os.MkdirAll(s.dir, 0o700); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		if err := os.WriteFile(s.keyPath(), raw, 0o600); err != nil {
			return nil, fmt.Errorf("write key file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return deriveKey(strings.TrimSpace(string(raw)))
}

// Read returns the stored token, or "" when no token has been written.
func (s *FileStore) Read() (string, error) {
	sealed, err := os.ReadFile(s.sealedPath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	key, err := s.loadKey(false)
	if err != nil {
		return "", fmt.Errorf("token key: %w", err)
	}
	token, err := openToken(sealed, key)
	if err != nil {
		return "", fmt.Errorf("unseal token: %w", err)
	}
	return token, nil
}

// Write seals and stores the token, creating the key file on first use.
func (s *FileStore) Write(token string) error {
	key, err := s.loadKey(true)
	if err != nil {
		return fmt.Errorf("token key: %w", err)
	}
	sealed, err := sealToken(token, key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.sealedPath(), sealed, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.sealedPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
