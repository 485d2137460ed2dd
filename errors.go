package cipherlab

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrUnknownAlgorithm is returned when an algorithm name is not recognized.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnknownMode is returned when a mode name is not recognized.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrKeySize is returned when a key has the wrong length for its algorithm.
	ErrKeySize = errors.New("invalid key size")

	// ErrNonceSize is returned when a CTR nonce has the wrong length.
	ErrNonceSize = errors.New("invalid nonce size")

	// ErrInputSize is returned when ECB ciphertext is empty or not a whole
	// number of blocks.
	ErrInputSize = errors.New("input is not a multiple of the block size")

	// ErrCiphertextShort is returned when a CTR ciphertext is too short to
	// contain its nonce.
	ErrCiphertextShort = errors.New("ciphertext shorter than nonce")
)

// CipherLabError is implemented by all error types of this package.
type CipherLabError interface {
	error
	CipherLabError() // marker method
}

// AlgorithmError reports an algorithm name this module does not implement.
type AlgorithmError struct {
	Algorithm Algorithm
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm %q", string(e.Algorithm))
}

// Is implements errors.Is for sentinel error matching.
func (e *AlgorithmError) Is(target error) bool {
	return target == ErrUnknownAlgorithm
}

// CipherLabError implements the CipherLabError interface.
func (e *AlgorithmError) CipherLabError() {}

// KeySizeError reports a key whose length does not fit the algorithm.
// It wraps the engine's own key size error.
type KeySizeError struct {
	Algorithm Algorithm
	Size      int
	Err       error
}

func (e *KeySizeError) Error() string {
	return fmt.Sprintf("%s: invalid key size %d", string(e.Algorithm), e.Size)
}

// Unwrap returns the underlying error.
func (e *KeySizeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeySizeError) Is(target error) bool {
	return target == ErrKeySize
}

// CipherLabError implements the CipherLabError interface.
func (e *KeySizeError) CipherLabError() {}

// NonceSizeError reports a CTR nonce of the wrong length.
type NonceSizeError struct {
	Size int
	Want int
}

func (e *NonceSizeError) Error() string {
	return fmt.Sprintf("invalid nonce size %d, want %d", e.Size, e.Want)
}

// Is implements errors.Is for sentinel error matching.
func (e *NonceSizeError) Is(target error) bool {
	return target == ErrNonceSize
}

// CipherLabError implements the CipherLabError interface.
func (e *NonceSizeError) CipherLabError() {}
