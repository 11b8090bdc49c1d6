// Package tokenseal encrypts bearer tokens before they reach a durable token slot.
package tokenseal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Versioned prefix so the key or algorithm can rotate without guessing formats.
const sealedPrefixV1 = "v1:"

// ErrUnsealed is returned by Open for a value that was not produced by Seal.
var ErrUnsealed = errors.New("stored token is not sealed")

// Sealer encrypts tokens with AES-256-GCM.
type Sealer struct {
	aead cipher.AEAD
}

// DeriveKey turns a configured secret into an AES-256 key. A 64-character hex
// string is used as-is; anything else is hashed with SHA-256.
func DeriveKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("token key is required")
	}
	if decoded, err := hex.DecodeString(secret); err == nil && len(decoded) == 32 {
		return decoded, nil
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

// NewSealer constructs a Sealer. key must be 32 bytes.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("aes-gcm key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts token with a random nonce and returns "v1:" + base64(nonce||ciphertext).
func (s *Sealer) Seal(token string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(token), nil)
	return sealedPrefixV1 + base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, sealedPrefixV1) {
		return "", ErrUnsealed
	}
	data, err := base64.StdEncoding.DecodeString(sealed[len(sealedPrefixV1):])
	if err != nil {
		return "", fmt.Errorf("decode sealed token: %w", err)
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return "", errors.New("sealed token too short")
	}
	pt, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("open sealed token: %w", err)
	}
	return string(pt), nil
}
