// Package serpent implements the 32-round Serpent block cipher with
// bitsliced S-boxes.
//
// The block convention treats each 16-byte block as a single 128-bit
// big-endian integer whose least-significant 32 bits become word 0, so
// word i loads big-endian from bytes 12-4i..15-4i. Keys are read the
// same way. Keys shorter than 32 bytes are extended with one marker
// word of value 1 followed by zeros before scheduling, so a 16-byte key
// and its zero-extended 32-byte form produce different ciphertexts.
//
// Like the rest of this module the code is for study: it is not
// constant time and has no key-erasure guarantees.
package serpent

import (
	"encoding/binary"
	"math/bits"
	"strconv"

	"github.com/cipherlab/cipherlab-go/trace"
)

const (
	// BlockSize is the Serpent block size in bytes.
	BlockSize = 16

	// phi is the fractional part of the golden ratio, the schedule's
	// recurrence constant.
	phi = 0x9e3779b9

	rounds = 32
)

// KeySizeError is returned by NewCipher for key lengths other than
// 16, 24, or 32 bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "serpent: invalid key size " + strconv.Itoa(int(k))
}

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithTrace registers a callback that receives the block state after
// every round.
func WithTrace(fn trace.Func) Option {
	return func(c *Cipher) { c.trace = fn }
}

// Cipher is a Serpent instance for one key. It is immutable after
// NewCipher returns and safe for concurrent use.
type Cipher struct {
	sk    [33][4]uint32 // round keys: one per round plus the output key
	trace trace.Func
}

// NewCipher expands key and returns a Serpent block cipher. The key
// must be 16, 24, or 32 bytes long.
func NewCipher(key []byte, opts ...Option) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, KeySizeError(len(key))
	}

	c := &Cipher{}
	for _, opt := range opts {
		opt(c)
	}
	c.expandKey(key)
	return c, nil
}

// BlockSize returns the Serpent block size, 16 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// expandKey derives the 33 round keys. The 8 key words seed a 132-word
// recurrence (each new word rotates the XOR of four predecessors, phi,
// and the word index), and each group of four prekeys passes through
// one S-box in the cycle 3, 2, 1, 0, 7, 6, 5, 4, ...
func (c *Cipher) expandKey(key []byte) {
	var w [140]uint32
	n := len(key) / 4
	for i := 0; i < n; i++ {
		w[i] = binary.BigEndian.Uint32(key[len(key)-4*(i+1):])
	}
	if n < 8 {
		w[n] = 1 // marker word terminating a short key
	}

	for i := 0; i < 132; i++ {
		w[8+i] = bits.RotateLeft32(w[i]^w[i+3]^w[i+5]^w[i+7]^phi^uint32(i), 11)
	}

	pre := w[8:]
	j := 3
	for i := 0; i < 132; i += 4 {
		pre[i], pre[i+1], pre[i+2], pre[i+3] = sboxes[j](pre[i], pre[i+1], pre[i+2], pre[i+3])
		j = (j + 7) % 8
	}
	for i := range c.sk {
		c.sk[i] = [4]uint32{pre[4*i], pre[4*i+1], pre[4*i+2], pre[4*i+3]}
	}
}

// Encrypt encrypts the 16-byte block in src into dst: 31 rounds of key
// mixing, S-box, and linear transformation, then a final round where
// the linear transformation is replaced by mixing the 33rd key. Dst and
// src may overlap entirely; panics on short slices follow the
// crypto/cipher.Block contract.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("serpent: input not full block")
	}
	if len(dst) < BlockSize {
		panic("serpent: output not full block")
	}

	w0, w1, w2, w3 := loadWords(src)
	for i := 0; i < rounds-1; i++ {
		w0, w1, w2, w3 = mix(w0, w1, w2, w3, &c.sk[i])
		w0, w1, w2, w3 = sboxes[i%8](w0, w1, w2, w3)
		w0, w1, w2, w3 = linear(w0, w1, w2, w3)
		c.emit(trace.OpEncrypt, i, w0, w1, w2, w3)
	}
	w0, w1, w2, w3 = mix(w0, w1, w2, w3, &c.sk[31])
	w0, w1, w2, w3 = sb7(w0, w1, w2, w3)
	w0, w1, w2, w3 = mix(w0, w1, w2, w3, &c.sk[32])
	c.emit(trace.OpEncrypt, rounds-1, w0, w1, w2, w3)

	storeWords(dst, w0, w1, w2, w3)
}

// Decrypt decrypts the 16-byte block in src into dst by running the
// inverse S-boxes and inverse linear transformation through the round
// keys in reverse. Panics mirror Encrypt.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("serpent: input not full block")
	}
	if len(dst) < BlockSize {
		panic("serpent: output not full block")
	}

	w0, w1, w2, w3 := loadWords(src)
	w0, w1, w2, w3 = mix(w0, w1, w2, w3, &c.sk[32])
	w0, w1, w2, w3 = sb7Inv(w0, w1, w2, w3)
	w0, w1, w2, w3 = mix(w0, w1, w2, w3, &c.sk[31])
	c.emit(trace.OpDecrypt, 0, w0, w1, w2, w3)

	for i := rounds - 2; i >= 0; i-- {
		w0, w1, w2, w3 = linearInv(w0, w1, w2, w3)
		w0, w1, w2, w3 = sboxesInv[i%8](w0, w1, w2, w3)
		w0, w1, w2, w3 = mix(w0, w1, w2, w3, &c.sk[i])
		c.emit(trace.OpDecrypt, rounds-1-i, w0, w1, w2, w3)
	}

	storeWords(dst, w0, w1, w2, w3)
}

func mix(w0, w1, w2, w3 uint32, k *[4]uint32) (uint32, uint32, uint32, uint32) {
	return w0 ^ k[0], w1 ^ k[1], w2 ^ k[2], w3 ^ k[3]
}

func loadWords(b []byte) (w0, w1, w2, w3 uint32) {
	w0 = binary.BigEndian.Uint32(b[12:16])
	w1 = binary.BigEndian.Uint32(b[8:12])
	w2 = binary.BigEndian.Uint32(b[4:8])
	w3 = binary.BigEndian.Uint32(b[0:4])
	return
}

func storeWords(b []byte, w0, w1, w2, w3 uint32) {
	binary.BigEndian.PutUint32(b[0:4], w3)
	binary.BigEndian.PutUint32(b[4:8], w2)
	binary.BigEndian.PutUint32(b[8:12], w1)
	binary.BigEndian.PutUint32(b[12:16], w0)
}

func (c *Cipher) emit(op trace.Op, round int, w0, w1, w2, w3 uint32) {
	if c.trace == nil {
		return
	}
	state := make([]byte, BlockSize)
	storeWords(state, w0, w1, w2, w3)
	c.trace(trace.Event{Algorithm: "serpent", Op: op, Round: round, State: state})
}
