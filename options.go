package cipherlab

import (
	"io"

	"github.com/cipherlab/cipherlab-go/trace"
)

// Mode selects how a Cipher applies its block cipher to whole messages.
type Mode string

const (
	// ModeECB pads the message with PKCS#7 and encrypts each block
	// independently. Equal plaintext blocks yield equal ciphertext
	// blocks, which is exactly what makes it worth demonstrating.
	ModeECB Mode = "ecb"

	// ModeCTR encrypts a nonce-and-counter block stream and XORs it with
	// the message. No padding; the nonce is carried in front of the
	// ciphertext.
	ModeCTR Mode = "ctr"
)

// cipherConfig holds configuration for a Cipher.
type cipherConfig struct {
	mode  Mode
	nonce []byte
	trace trace.Func
	rand  io.Reader
}

// Option configures a Cipher.
type Option func(*cipherConfig)

// WithMode sets the mode of operation.
// Default: ModeECB.
func WithMode(mode Mode) Option {
	return func(c *cipherConfig) {
		c.mode = mode
	}
}

// WithNonce fixes the CTR nonce instead of drawing a random one per
// message. The nonce must be BlockSize-8 bytes long. Reusing a nonce
// under the same key reveals the XOR of the plaintexts.
func WithNonce(nonce []byte) Option {
	return func(c *cipherConfig) {
		c.nonce = nonce
	}
}

// WithTrace registers a callback that receives one event per cipher
// round. See the trace package for the event layout.
func WithTrace(fn trace.Func) Option {
	return func(c *cipherConfig) {
		c.trace = fn
	}
}

// WithRand sets the random source used to draw CTR nonces.
// Default: crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(c *cipherConfig) {
		c.rand = r
	}
}
