// Package aes implements AES-128 encryption and decryption as specified
// in FIPS-197, written for readability rather than speed.
//
// The block transform works byte-for-byte from the standard's
// definitions: the S-box and its inverse are literal tables, column
// mixing multiplies in GF(2^8), and the key schedule stores all eleven
// round keys as 32-bit words. The Cipher satisfies crypto/cipher.Block,
// so it can be dropped into any mode of operation, including the ones
// in the blockmode package.
//
// This implementation is not hardened: lookups are data-dependent and
// nothing here is constant time. Do not use it to protect real data.
package aes

import (
	"encoding/binary"
	"math/bits"
	"strconv"

	"github.com/cipherlab/cipherlab-go/internal/gf"
	"github.com/cipherlab/cipherlab-go/trace"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
	// KeySize is the only key length this package accepts. AES-192 and
	// AES-256 differ only in schedule length and round count, but the
	// 128-bit variant is the one implemented here.
	KeySize = 16

	rounds = 10
)

// KeySizeError is returned by NewCipher for keys that are not exactly
// KeySize bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aes: invalid key size " + strconv.Itoa(int(k))
}

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithTrace registers a callback that receives the block state after
// the initial whitening and after every round of Encrypt and Decrypt.
func WithTrace(fn trace.Func) Option {
	return func(c *Cipher) { c.trace = fn }
}

// Cipher is an AES-128 block cipher instance. It is immutable after
// NewCipher returns and safe for concurrent use.
type Cipher struct {
	rk    [44]uint32 // round keys as big-endian words, 4 per round
	trace trace.Func
}

// NewCipher expands key into an AES-128 round-key schedule and returns
// the resulting block cipher. The key must be exactly 16 bytes.
func NewCipher(key []byte, opts ...Option) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	c := &Cipher{}
	for _, opt := range opts {
		opt(c)
	}
	expandKey(key, &c.rk)
	return c, nil
}

// BlockSize returns the AES block size, 16 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the 16-byte block in src into dst. Dst and src may
// overlap entirely. Encrypt panics if either slice is shorter than a
// block, matching the crypto/cipher.Block contract.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}

	var s [16]byte
	copy(s[:], src[:BlockSize])

	c.addRoundKey(&s, 0)
	c.emit(trace.OpEncrypt, 0, &s)
	for r := 1; r < rounds; r++ {
		subBytes(&s)
		shiftRows(&s)
		mixColumns(&s)
		c.addRoundKey(&s, r)
		c.emit(trace.OpEncrypt, r, &s)
	}
	// Final round omits MixColumns.
	subBytes(&s)
	shiftRows(&s)
	c.addRoundKey(&s, rounds)
	c.emit(trace.OpEncrypt, rounds, &s)

	copy(dst[:BlockSize], s[:])
}

// Decrypt decrypts the 16-byte block in src into dst using the inverse
// cipher (FIPS-197 5.3). Panics mirror Encrypt.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}

	var s [16]byte
	copy(s[:], src[:BlockSize])

	c.addRoundKey(&s, rounds)
	c.emit(trace.OpDecrypt, 0, &s)
	for r := rounds - 1; r >= 1; r-- {
		invShiftRows(&s)
		invSubBytes(&s)
		c.addRoundKey(&s, r)
		invMixColumns(&s)
		c.emit(trace.OpDecrypt, rounds-r, &s)
	}
	invShiftRows(&s)
	invSubBytes(&s)
	c.addRoundKey(&s, 0)
	c.emit(trace.OpDecrypt, rounds, &s)

	copy(dst[:BlockSize], s[:])
}

func (c *Cipher) emit(op trace.Op, round int, s *[16]byte) {
	if c.trace == nil {
		return
	}
	state := make([]byte, BlockSize)
	copy(state, s[:])
	c.trace(trace.Event{Algorithm: "aes-128", Op: op, Round: round, State: state})
}

// expandKey fills rk with the 44-word schedule of FIPS-197 5.2: each
// new word is the XOR of the word four back and either the previous
// word or, on 4-word boundaries, its rotated, substituted, round-
// constant-mixed form.
func expandKey(key []byte, rk *[44]uint32) {
	for i := 0; i < 4; i++ {
		rk[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	for i := 4; i < len(rk); i++ {
		t := rk[i-1]
		if i%4 == 0 {
			t = subWord(rotWord(t)) ^ uint32(rcon[i/4-1])<<24
		}
		rk[i] = rk[i-4] ^ t
	}
}

func rotWord(w uint32) uint32 { return bits.RotateLeft32(w, 8) }

func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w&0xff])
}

// addRoundKey XORs round key r into the state. The state is kept in
// input byte order, so state bytes 4c..4c+3 form column c and the
// schedule word for that column applies big-endian.
func (c *Cipher) addRoundKey(s *[16]byte, r int) {
	for col := 0; col < 4; col++ {
		w := c.rk[4*r+col]
		s[4*col+0] ^= byte(w >> 24)
		s[4*col+1] ^= byte(w >> 16)
		s[4*col+2] ^= byte(w >> 8)
		s[4*col+3] ^= byte(w)
	}
}

func subBytes(s *[16]byte) {
	for i, b := range s {
		s[i] = sbox[b]
	}
}

func invSubBytes(s *[16]byte) {
	for i, b := range s {
		s[i] = invSbox[b]
	}
}

// shiftRows rotates row r of the state left by r positions. Row r
// occupies state indices r, r+4, r+8, r+12.
func shiftRows(s *[16]byte) {
	s[1], s[5], s[9], s[13] = s[5], s[9], s[13], s[1]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[15], s[3], s[7], s[11]
}

func invShiftRows(s *[16]byte) {
	s[1], s[5], s[9], s[13] = s[13], s[1], s[5], s[9]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[7], s[11], s[15], s[3]
}

func mul(a, b byte) byte { return gf.Mul(a, b, gf.PolyAES) }

// mixColumns multiplies each state column by the fixed polynomial
// {03}x^3 + {01}x^2 + {01}x + {02} modulo x^4 + 1.
func mixColumns(s *[16]byte) {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c+0] = mul(a0, 2) ^ mul(a1, 3) ^ a2 ^ a3
		s[c+1] = a0 ^ mul(a1, 2) ^ mul(a2, 3) ^ a3
		s[c+2] = a0 ^ a1 ^ mul(a2, 2) ^ mul(a3, 3)
		s[c+3] = mul(a0, 3) ^ a1 ^ a2 ^ mul(a3, 2)
	}
}

// invMixColumns applies the inverse polynomial {0b}x^3 + {0d}x^2 +
// {09}x + {0e}.
func invMixColumns(s *[16]byte) {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c+0] = mul(a0, 0x0e) ^ mul(a1, 0x0b) ^ mul(a2, 0x0d) ^ mul(a3, 0x09)
		s[c+1] = mul(a0, 0x09) ^ mul(a1, 0x0e) ^ mul(a2, 0x0b) ^ mul(a3, 0x0d)
		s[c+2] = mul(a0, 0x0d) ^ mul(a1, 0x09) ^ mul(a2, 0x0e) ^ mul(a3, 0x0b)
		s[c+3] = mul(a0, 0x0b) ^ mul(a1, 0x0d) ^ mul(a2, 0x09) ^ mul(a3, 0x0e)
	}
}
