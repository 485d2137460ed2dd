// Package hashes implements MD5, SHA-1, and SHA-256 from scratch as
// streaming hash.Hash values.
//
// All three share the Merkle-Damgard shape: buffer input into 64-byte
// blocks, run a compression function per block, then finish with a
// 0x80 byte, zero padding, and the message bit length. The point of
// reimplementing them is that the compression functions stay readable;
// use crypto/md5 and friends when you just need a digest.
package hashes

import (
	"errors"
	"fmt"
	"hash"
)

// ErrUnknownAlgorithm is returned by New for names it does not know.
var ErrUnknownAlgorithm = errors.New("hashes: unknown algorithm")

// New returns a fresh hash for name: "md5", "sha1", or "sha256".
func New(name string) (hash.Hash, error) {
	switch name {
	case "md5":
		return NewMD5(), nil
	case "sha1":
		return NewSHA1(), nil
	case "sha256":
		return NewSHA256(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Names lists the algorithms New accepts, in display order.
func Names() []string {
	return []string{"md5", "sha1", "sha256"}
}
