package cipherlab

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// kdfInfo is the HKDF domain separation label for this module.
var kdfInfo = []byte("cipherlab-v1")

// Argon2id cost parameters. Interactive-use settings: one pass over
// 64 MiB with four lanes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// KeyFromPassphrase derives a cipher key of keyLen bytes from a
// passphrase using HKDF-SHA-512 with a zero salt and a fixed label.
// The same passphrase always yields the same key, which is what a
// command line flag needs; it is not a substitute for a slow password
// hash when the passphrase is weak (see KeyFromPassword).
func KeyFromPassphrase(passphrase string, keyLen int) ([]byte, error) {
	if keyLen <= 0 {
		return nil, fmt.Errorf("derive key: invalid length %d", keyLen)
	}

	reader := hkdf.New(sha512.New, []byte(passphrase), make([]byte, sha512.Size), kdfInfo)
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// KeyFromPassword derives a cipher key of keyLen bytes from a password
// and salt using Argon2id. The salt must be non-empty; callers should
// draw a fresh random salt per password and store it next to the
// ciphertext.
func KeyFromPassword(password, salt []byte, keyLen int) ([]byte, error) {
	if keyLen <= 0 {
		return nil, fmt.Errorf("derive key: invalid length %d", keyLen)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("derive key: salt is required")
	}
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, uint32(keyLen)), nil
}
