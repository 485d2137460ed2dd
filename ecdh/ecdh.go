// Package ecdh implements X25519 Diffie-Hellman key agreement as
// specified in RFC 7748.
//
// Two parties each generate a key pair, exchange public keys, and call
// SharedSecret with their own private key and the peer's public key.
// Both calls yield the same 32-byte value. The raw shared secret should
// be run through a key derivation function before use as a cipher key.
package ecdh

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

// KeySize is the length in bytes of X25519 private keys, public keys
// and shared secrets.
const KeySize = x25519.Size

var (
	// ErrKeySize is returned when a private or public key is not
	// KeySize bytes long.
	ErrKeySize = errors.New("ecdh: key is not 32 bytes")

	// ErrLowOrderPoint is returned by SharedSecret when the peer public
	// key is a low-order point, for which the shared secret degenerates
	// to all zeros.
	ErrLowOrderPoint = errors.New("ecdh: peer public key is a low-order point")
)

// KeyPair holds an X25519 key pair.
type KeyPair struct {
	// Public is the 32-byte public key, sent to the peer.
	Public []byte
	// Private is the 32-byte private key. Keep it secret.
	Private []byte
}

// GenerateKeyPair creates a new random X25519 key pair. If rng is nil,
// crypto/rand.Reader is used.
func GenerateKeyPair(rng io.Reader) (*KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	priv := make([]byte, KeySize)
	if _, err := io.ReadFull(rng, priv); err != nil {
		return nil, err
	}
	return NewKeyPairFromPrivate(priv)
}

// NewKeyPairFromPrivate rebuilds a key pair from a stored private key,
// deriving the matching public key.
func NewKeyPairFromPrivate(priv []byte) (*KeyPair, error) {
	if len(priv) != KeySize {
		return nil, ErrKeySize
	}
	var secret, public x25519.Key
	copy(secret[:], priv)
	x25519.KeyGen(&public, &secret)

	kp := &KeyPair{
		Public:  make([]byte, KeySize),
		Private: make([]byte, KeySize),
	}
	copy(kp.Public, public[:])
	copy(kp.Private, priv)
	return kp, nil
}

// SharedSecret computes the X25519 shared secret between a private key
// and a peer's public key. The private key may come from either side of
// the exchange; both sides arrive at the same value.
func SharedSecret(priv, peerPub []byte) ([]byte, error) {
	if len(priv) != KeySize || len(peerPub) != KeySize {
		return nil, ErrKeySize
	}
	var secret, public, shared x25519.Key
	copy(secret[:], priv)
	copy(public[:], peerPub)
	if !x25519.Shared(&shared, &secret, &public) {
		return nil, ErrLowOrderPoint
	}
	return shared[:], nil
}
