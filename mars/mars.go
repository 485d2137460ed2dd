// Package mars implements a reduced Feistel cipher loosely modeled on
// the MARS AES finalist: a 128-bit block split into two 64-bit halves,
// eight rounds, and round keys derived by hashing the user key.
//
// The round function only mixes the low 32 bits of each half, so the
// high halves travel through the network untouched except for the
// swaps. That makes the diffusion failure directly visible in
// ciphertexts and is the reason this cipher exists: it demonstrates
// what a Feistel network does NOT give you for free. Do not use it to
// protect anything.
package mars

import (
	"crypto/sha256"
	"encoding/binary"
	"math/bits"
	"strconv"

	"github.com/cipherlab/cipherlab-go/trace"
)

const (
	// BlockSize is the block size in bytes.
	BlockSize = 16
	// KeySize is the only key length this package accepts.
	KeySize = 16

	rounds = 8

	// delta is the golden-ratio constant folded into every round.
	delta = 0x9e3779b9
)

// KeySizeError is returned by NewCipher for keys that are not exactly
// KeySize bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "mars: invalid key size " + strconv.Itoa(int(k))
}

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithTrace registers a callback that receives the block state after
// every Feistel round.
func WithTrace(fn trace.Func) Option {
	return func(c *Cipher) { c.trace = fn }
}

// Cipher is a cipher instance for one key. It is immutable after
// NewCipher returns and safe for concurrent use.
type Cipher struct {
	rk    [rounds]uint32
	trace trace.Func
}

// NewCipher derives the round keys from key and returns the resulting
// block cipher. The key must be exactly 16 bytes.
func NewCipher(key []byte, opts ...Option) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}

	c := &Cipher{}
	for _, opt := range opts {
		opt(c)
	}
	c.expandKey(key)
	return c, nil
}

// BlockSize returns the block size, 16 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// expandKey hashes the key with SHA-256 and slices the digest into
// eight little-endian round keys. Hashing stands in for a real key
// schedule; every round key depends on every key byte, which is the
// one property the demonstration needs.
func (c *Cipher) expandKey(key []byte) {
	digest := sha256.Sum256(key)
	for i := range c.rk {
		c.rk[i] = binary.LittleEndian.Uint32(digest[4*i:])
	}
}

// feistel is the round function: XOR the round key into the low word,
// add the golden-ratio constant, rotate left 5.
func feistel(x, k uint32) uint32 {
	return bits.RotateLeft32((x^k)+delta, 5)
}

// Encrypt encrypts the 16-byte block in src into dst. Dst and src may
// overlap entirely. Panics on short slices per crypto/cipher.Block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("mars: input not full block")
	}
	if len(dst) < BlockSize {
		panic("mars: output not full block")
	}

	l := binary.LittleEndian.Uint64(src[0:])
	r := binary.LittleEndian.Uint64(src[8:])

	for i := 0; i < rounds; i++ {
		t := feistel(uint32(r), c.rk[i])
		l, r = r, l^uint64(t)
		c.emit(trace.OpEncrypt, i, l, r)
	}

	binary.LittleEndian.PutUint64(dst[0:], l)
	binary.LittleEndian.PutUint64(dst[8:], r)
}

// Decrypt decrypts the 16-byte block in src into dst by running the
// rounds backwards. Panics mirror Encrypt.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("mars: input not full block")
	}
	if len(dst) < BlockSize {
		panic("mars: output not full block")
	}

	l := binary.LittleEndian.Uint64(src[0:])
	r := binary.LittleEndian.Uint64(src[8:])

	for i := rounds - 1; i >= 0; i-- {
		t := feistel(uint32(l), c.rk[i])
		l, r = r^uint64(t), l
		c.emit(trace.OpDecrypt, rounds-1-i, l, r)
	}

	binary.LittleEndian.PutUint64(dst[0:], l)
	binary.LittleEndian.PutUint64(dst[8:], r)
}

func (c *Cipher) emit(op trace.Op, round int, l, r uint64) {
	if c.trace == nil {
		return
	}
	state := make([]byte, BlockSize)
	binary.LittleEndian.PutUint64(state[0:], l)
	binary.LittleEndian.PutUint64(state[8:], r)
	c.trace(trace.Event{Algorithm: "mars", Op: op, Round: round, State: state})
}
