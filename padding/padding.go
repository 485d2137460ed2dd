// Package padding implements PKCS#7 padding for block ciphers.
//
// Pad always appends at least one byte, so a message that already fills
// a whole number of blocks grows by one full block of padding. This is
// what lets Unpad distinguish padding from data unambiguously.
package padding

import (
	"errors"
	"fmt"
)

// ErrInvalidPadding is returned when unpadding encounters bytes that are
// not well-formed PKCS#7 padding.
var ErrInvalidPadding = errors.New("invalid padding")

// Pad returns data extended with PKCS#7 padding to a multiple of
// blockSize. The result is always longer than the input: between 1 and
// blockSize bytes are appended, each holding the pad length itself.
// Pad panics if blockSize is outside 1..255, since PKCS#7 encodes the
// pad length in a single byte.
func Pad(data []byte, blockSize int) []byte {
	if blockSize < 1 || blockSize > 255 {
		panic("padding: block size must be between 1 and 255")
	}
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// Unpad strips PKCS#7 padding from data and returns the original
// message. It returns an error wrapping ErrInvalidPadding when data is
// empty, is not a multiple of blockSize, declares a pad length outside
// 1..blockSize, or contains padding bytes that disagree with the
// declared length.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 255 {
		panic("padding: block size must be between 1 and 255")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPadding)
	}
	if len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: input length %d is not a multiple of block size %d", ErrInvalidPadding, len(data), blockSize)
	}
	n := int(data[len(data)-1])
	if n < 1 || n > blockSize {
		return nil, fmt.Errorf("%w: pad length %d out of range", ErrInvalidPadding, n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: inconsistent pad bytes", ErrInvalidPadding)
		}
	}
	return data[:len(data)-n], nil
}
