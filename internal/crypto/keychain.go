// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	secret []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// Option tunes a [KeyChain].
type Option func(*keyChain)

// WithArgonParams overrides the Argon2id time and memory (KiB) costs.
func WithArgonParams(time, memory uint32) Option {
	return func(k *keyChain) {
		k.argonTime = time
		k.argonMemory = memory
	}
}

// NewKeyChain constructs a [KeyChain] for secret with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChain(secret string, opts ...Option) (KeyChain, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	k := &keyChain{
		secret:       []byte(secret),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
	for _, opt := range opts {
		opt(k)
	}

	return k, nil
}

// Seal implements [KeyChain].
func (k *keyChain) Seal(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := k.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [KeyChain].
func (k *keyChain) Open(sealed string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrSealedValueCorrupt, err)
	}
	if len(blob) < saltSize {
		return "", fmt.Errorf("%w: too short", ErrSealedValueCorrupt)
	}

	salt, rest := blob[:saltSize], blob[saltSize:]
	gcm, err := k.aead(salt)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return "", fmt.Errorf("%w: too short", ErrSealedValueCorrupt)
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	// A wrong secret surfaces here as an authentication-tag mismatch.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealedValueCorrupt, err)
	}

	return string(plaintext), nil
}

func (k *keyChain) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(k.secret, salt, k.argonTime, k.argonMemory, k.argonThreads, k.argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
