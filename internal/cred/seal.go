package cred

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// Sealed token layout: [ 24-byte nonce ][ secretbox ciphertext ], with the
// sealing key derived from the per-install key file via HKDF-SHA256.

const (
	keySize   = 32
	nonceSize = 24
)

var hkdfInfo = []byte("snag-token-v1")

// deriveKey stretches the key-file seed into the secretbox key. The same
// seed always derives the same key.
func deriveKey(seed string) (*[keySize]byte, error) {
	h := hkdf.New(sha256.New, []byte(seed), nil, hkdfInfo)
	var key [keySize]byte
	if _, err := io.ReadFull(h, key[:]); err != nil {
		return nil, fmt.Errorf("key derivation: %w", err)
	}
	return &key, nil
}

// sealToken encrypts token with key, prepending a random nonce.
func sealToken(token string, key *[keySize]byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("nonce generation: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(token), &nonce, key), nil
}

// openToken decrypts a sealed blob back into the token.
func openToken(sealed []byte, key *[keySize]byte) (string, error) {
	if len(sealed) < nonceSize {
		return "", fmt.Errorf("sealed token too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, key)
	if !ok {
		return "", fmt.Errorf("decryption failed")
	}
	return string(plain), nil
}
