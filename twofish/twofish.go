// Package twofish implements a reduced teaching variant of the Twofish
// block cipher: the 16-round Feistel network, PHT subkey schedule, and
// MDS diffusion of the original, with deliberately simplified byte
// permutations.
//
// Differences from standard Twofish, all intentional: the q0/q1 byte
// permutations are the identity and the complement, the key-dependent
// S-box stage reuses the tail words of the key directly instead of
// RS-derived material, and the MDS row combination is a truncated
// integer sum rather than XOR. Ciphertexts are not interoperable with
// real Twofish. Keys of 16, 24, and 32 bytes are accepted.
package twofish

import (
	"math/bits"
	"strconv"

	"github.com/cipherlab/cipherlab-go/internal/gf"
	"github.com/cipherlab/cipherlab-go/trace"
)

const (
	// BlockSize is the Twofish block size in bytes.
	BlockSize = 16

	rounds     = 16
	numSubkeys = 40
)

// KeySizeError is returned by NewCipher for key lengths other than
// 16, 24, or 32 bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "twofish: invalid key size " + strconv.Itoa(int(k))
}

// mds is the maximum-distance-separable matrix from the Twofish
// specification. Multiplication is in GF(2^8) mod 0x169.
var mds = [4][4]byte{
	{0x01, 0xEF, 0x5B, 0x5B},
	{0x5B, 0xEF, 0xEF, 0x01},
	{0xEF, 0x5B, 0x01, 0xEF},
	{0xEF, 0x01, 0xEF, 0x5B},
}

// q0 and q1 stand in for Twofish's fixed byte permutations: the
// identity and the complement (255 - b).
func q0(b byte) byte { return b }
func q1(b byte) byte { return 0xff - b }

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithTrace registers a callback that receives the block state after
// input whitening, after every Feistel round, and after output
// whitening.
func WithTrace(fn trace.Func) Option {
	return func(c *Cipher) { c.trace = fn }
}

// Cipher is a Twofish instance for one key. It is immutable after
// NewCipher returns and safe for concurrent use.
type Cipher struct {
	k     []uint32           // key as little-endian words
	s     [4]uint32          // S-box material: the last four key words
	sk    [numSubkeys]uint32 // round subkeys
	trace trace.Func
}

// NewCipher expands key and returns a Twofish block cipher. The key
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

	c.k = make([]uint32, len(key)/4)
	for i := range c.k {
		c.k[i] = leWord(key[4*i:])
	}
	c.expandKey()
	return c, nil
}

// BlockSize returns the Twofish block size, 16 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// expandKey computes the 40 round subkeys and captures the S-box
// words. Subkey i is h at the even point 2i and the odd point 2i+1,
// each point repeated across all four byte lanes by the 0x01010101
// stride; the odd half is rotated 8 bits before the additive combine.
func (c *Cipher) expandKey() {
	for i := 0; i < numSubkeys; i++ {
		a := h(uint32(2*i)*0x01010101, c.k)
		b := bits.RotateLeft32(h(uint32(2*i+1)*0x01010101, c.k), 8)
		c.sk[i] = a + b
	}
	copy(c.s[:], c.k[len(c.k)-4:])
}

func leWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLEWord(b []byte, w uint32) {
	b[0] = byte(w)
	b[1] = byte(w >> 8)
	b[2] = byte(w >> 16)
	b[3] = byte(w >> 24)
}

// h is the subkey derivation function: a byte pipeline over the key
// words in reverse order through q0, finished by the MDS matrix.
func h(x uint32, l []uint32) uint32 {
	var v [4]byte
	for i := range v {
		v[i] = byte(x >> (8 * i))
	}
	for j := len(l) - 1; j >= 0; j-- {
		k := l[j]
		for i := range v {
			v[i] = q0(v[i]) ^ byte(k>>(8*i))
		}
	}
	v = mdsColumn(v)
	return leWord(v[:])
}

// g is the round S-box function: the same pipeline shape as h, but
// over the four S words through q1.
func (c *Cipher) g(x uint32) uint32 {
	var v [4]byte
	for i := range v {
		v[i] = byte(x >> (8 * i))
	}
	for j := 3; j >= 0; j-- {
		s := c.s[j]
		for i := range v {
			v[i] = q1(v[i] ^ byte(s>>(8*i)))
		}
	}
	v = mdsColumn(v)
	return leWord(v[:])
}

// mdsColumn multiplies the MDS matrix by a byte vector. Each product
// is a GF(2^8) multiplication mod 0x169; the row combination is an
// 8-bit truncated integer sum, not XOR.
func mdsColumn(v [4]byte) [4]byte {
	var out [4]byte
	for r := range mds {
		sum := 0
		for i := range v {
			sum += int(gf.Mul(mds[r][i], v[i], gf.PolyTwofish))
		}
		out[r] = byte(sum)
	}
	return out
}

// f is the Feistel round function: two g evaluations (the second on a
// byte-rotated input) mixed by a pseudo-Hadamard transform.
func (c *Cipher) f(r0, r1 uint32) (f0, f1 uint32) {
	t0 := c.g(r0)
	t1 := c.g(bits.RotateLeft32(r1, 8))
	return t0 + t1, t0 + 2*t1
}

// Encrypt encrypts the 16-byte block in src into dst. Dst and src may
// overlap entirely. Panics on short slices per crypto/cipher.Block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("twofish: input not full block")
	}
	if len(dst) < BlockSize {
		panic("twofish: output not full block")
	}

	r0 := leWord(src[0:]) ^ c.sk[0]
	r1 := leWord(src[4:]) ^ c.sk[1]
	r2 := leWord(src[8:]) ^ c.sk[2]
	r3 := leWord(src[12:]) ^ c.sk[3]
	c.emit(trace.OpEncrypt, 0, r0, r1, r2, r3)

	for r := 0; r < rounds; r++ {
		f0, f1 := c.f(r0, r1)
		r2 = bits.RotateLeft32(r2^f0, -1)
		r3 = bits.RotateLeft32(r3^f1, 1)
		r0, r1, r2, r3 = r2, r3, r0, r1
		c.emit(trace.OpEncrypt, r+1, r0, r1, r2, r3)
	}
	// Undo the last swap before output whitening.
	r0, r1, r2, r3 = r2, r3, r0, r1

	r0 ^= c.sk[4]
	r1 ^= c.sk[5]
	r2 ^= c.sk[6]
	r3 ^= c.sk[7]
	c.emit(trace.OpEncrypt, rounds+1, r0, r1, r2, r3)

	putLEWord(dst[0:], r0)
	putLEWord(dst[4:], r1)
	putLEWord(dst[8:], r2)
	putLEWord(dst[12:], r3)
}

// Decrypt decrypts the 16-byte block in src into dst by replaying the
// rounds in reverse. Panics mirror Encrypt.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("twofish: input not full block")
	}
	if len(dst) < BlockSize {
		panic("twofish: output not full block")
	}

	r0 := leWord(src[0:]) ^ c.sk[4]
	r1 := leWord(src[4:]) ^ c.sk[5]
	r2 := leWord(src[8:]) ^ c.sk[6]
	r3 := leWord(src[12:]) ^ c.sk[7]
	c.emit(trace.OpDecrypt, 0, r0, r1, r2, r3)

	r0, r1, r2, r3 = r2, r3, r0, r1
	for r := rounds - 1; r >= 0; r-- {
		r0, r1, r2, r3 = r2, r3, r0, r1
		f0, f1 := c.f(r0, r1)
		r2 = bits.RotateLeft32(r2, 1) ^ f0
		r3 = bits.RotateLeft32(r3, -1) ^ f1
		c.emit(trace.OpDecrypt, rounds-r, r0, r1, r2, r3)
	}

	r0 ^= c.sk[0]
	r1 ^= c.sk[1]
	r2 ^= c.sk[2]
	r3 ^= c.sk[3]
	c.emit(trace.OpDecrypt, rounds+1, r0, r1, r2, r3)

	putLEWord(dst[0:], r0)
	putLEWord(dst[4:], r1)
	putLEWord(dst[8:], r2)
	putLEWord(dst[12:], r3)
}

func (c *Cipher) emit(op trace.Op, round int, r0, r1, r2, r3 uint32) {
	if c.trace == nil {
		return
	}
	state := make([]byte, BlockSize)
	putLEWord(state[0:], r0)
	putLEWord(state[4:], r1)
	putLEWord(state[8:], r2)
	putLEWord(state[12:], r3)
	c.trace(trace.Event{Algorithm: "twofish", Op: op, Round: round, State: state})
}
