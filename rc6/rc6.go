// Package rc6 implements the RC6-32/20/16 block cipher: 32-bit words,
// 20 rounds, 16-byte keys.
//
// RC6 mixes by data-dependent rotations: each round rotates by amounts
// computed from the block itself via the quadratic f(x) = x(2x+1). The
// word size fixes the rotation window to the low 5 bits of the amount.
// RC6 proper accepts longer keys; this implementation pins the 128-bit
// parameterization from the AES submission so every instance shares one
// schedule shape.
package rc6

import (
	"encoding/binary"
	"math/bits"
	"strconv"

	"github.com/cipherlab/cipherlab-go/trace"
)

const (
	// BlockSize is the RC6 block size in bytes.
	BlockSize = 16
	// KeySize is the only key length this package accepts.
	KeySize = 16

	rounds = 20
	// lgw is log2 of the word size; rotation amounts are taken mod 2^lgw.
	lgw = 5

	// Schedule constants: Odd((e-2)*2^32) and Odd((phi-1)*2^32).
	constP = 0xB7E15163
	constQ = 0x9E3779B9
)

// numSubkeys is the schedule length 2r+4.
const numSubkeys = 2*rounds + 4

// KeySizeError is returned by NewCipher for keys that are not exactly
// KeySize bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "rc6: invalid key size " + strconv.Itoa(int(k))
}

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithTrace registers a callback that receives the block state after
// the initial whitening, after every round, and after the final
// whitening.
func WithTrace(fn trace.Func) Option {
	return func(c *Cipher) { c.trace = fn }
}

// Cipher is an RC6 instance for one key. It is immutable after
// NewCipher returns and safe for concurrent use.
type Cipher struct {
	sk    [numSubkeys]uint32
	trace trace.Func
}

// NewCipher expands key into the RC6 subkey schedule and returns the
// resulting block cipher. The key must be exactly 16 bytes.
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

// BlockSize returns the RC6 block size, 16 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// expandKey fills the schedule with the arithmetic progression seeded
// by P and Q, then swirls the key words in over 3*(2r+4) iterations of
// alternating rotations. Both running registers feed each other, so
// every subkey ends up depending on every key byte.
func (c *Cipher) expandKey(key []byte) {
	var l [KeySize / 4]uint32
	for i := range l {
		l[i] = binary.LittleEndian.Uint32(key[4*i:])
	}

	c.sk[0] = constP
	for i := 1; i < numSubkeys; i++ {
		c.sk[i] = c.sk[i-1] + constQ
	}

	var a, b uint32
	var i, j int
	for s := 0; s < 3*numSubkeys; s++ {
		a = bits.RotateLeft32(c.sk[i]+a+b, 3)
		c.sk[i] = a
		b = bits.RotateLeft32(l[j]+a+b, int((a+b)&(1<<lgw-1)))
		l[j] = b
		i = (i + 1) % numSubkeys
		j = (j + 1) % len(l)
	}
}

// Encrypt encrypts the 16-byte block in src into dst. Dst and src may
// overlap entirely. Panics on short slices per crypto/cipher.Block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rc6: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rc6: output not full block")
	}

	ra := binary.LittleEndian.Uint32(src[0:])
	rb := binary.LittleEndian.Uint32(src[4:])
	rc := binary.LittleEndian.Uint32(src[8:])
	rd := binary.LittleEndian.Uint32(src[12:])

	rb += c.sk[0]
	rd += c.sk[1]
	c.emit(trace.OpEncrypt, 0, ra, rb, rc, rd)

	for r := 1; r <= rounds; r++ {
		t := bits.RotateLeft32(rb*(2*rb+1), lgw)
		u := bits.RotateLeft32(rd*(2*rd+1), lgw)
		ra = bits.RotateLeft32(ra^t, int(u&(1<<lgw-1))) + c.sk[2*r]
		rc = bits.RotateLeft32(rc^u, int(t&(1<<lgw-1))) + c.sk[2*r+1]
		ra, rb, rc, rd = rb, rc, rd, ra
		c.emit(trace.OpEncrypt, r, ra, rb, rc, rd)
	}

	ra += c.sk[2*rounds+2]
	rc += c.sk[2*rounds+3]
	c.emit(trace.OpEncrypt, rounds+1, ra, rb, rc, rd)

	binary.LittleEndian.PutUint32(dst[0:], ra)
	binary.LittleEndian.PutUint32(dst[4:], rb)
	binary.LittleEndian.PutUint32(dst[8:], rc)
	binary.LittleEndian.PutUint32(dst[12:], rd)
}

// Decrypt decrypts the 16-byte block in src into dst by undoing the
// rounds in reverse order. Panics mirror Encrypt.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rc6: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rc6: output not full block")
	}

	ra := binary.LittleEndian.Uint32(src[0:])
	rb := binary.LittleEndian.Uint32(src[4:])
	rc := binary.LittleEndian.Uint32(src[8:])
	rd := binary.LittleEndian.Uint32(src[12:])

	rc -= c.sk[2*rounds+3]
	ra -= c.sk[2*rounds+2]
	c.emit(trace.OpDecrypt, 0, ra, rb, rc, rd)

	for r := rounds; r >= 1; r-- {
		ra, rb, rc, rd = rd, ra, rb, rc
		u := bits.RotateLeft32(rd*(2*rd+1), lgw)
		t := bits.RotateLeft32(rb*(2*rb+1), lgw)
		rc = bits.RotateLeft32(rc-c.sk[2*r+1], -int(t&(1<<lgw-1))) ^ u
		ra = bits.RotateLeft32(ra-c.sk[2*r], -int(u&(1<<lgw-1))) ^ t
		c.emit(trace.OpDecrypt, rounds+1-r, ra, rb, rc, rd)
	}

	rd -= c.sk[1]
	rb -= c.sk[0]
	c.emit(trace.OpDecrypt, rounds+1, ra, rb, rc, rd)

	binary.LittleEndian.PutUint32(dst[0:], ra)
	binary.LittleEndian.PutUint32(dst[4:], rb)
	binary.LittleEndian.PutUint32(dst[8:], rc)
	binary.LittleEndian.PutUint32(dst[12:], rd)
}

func (c *Cipher) emit(op trace.Op, round int, ra, rb, rc, rd uint32) {
	if c.trace == nil {
		return
	}
	state := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(state[0:], ra)
	binary.LittleEndian.PutUint32(state[4:], rb)
	binary.LittleEndian.PutUint32(state[8:], rc)
	binary.LittleEndian.PutUint32(state[12:], rd)
	c.trace(trace.Event{Algorithm: "rc6", Op: op, Round: round, State: state})
}
