// Package rc4 implements the RC4 stream cipher with a parameterized
// word width. Width 8 is the classic byte-oriented cipher; smaller
// widths shrink the state to 2^n entries so the key-scheduling
// algorithm and the generator can be followed by hand, one swap at a
// time.
//
// RC4 is cryptographically broken. It is here to be studied, not used.
package rc4

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cipherlab/cipherlab-go/trace"
)

// maxWidth is the largest supported word width in bits.
const maxWidth = 8

// ErrSymbolRange is returned when a key symbol does not fit the
// configured word width.
var ErrSymbolRange = errors.New("rc4: key symbol out of word range")

// KeySizeError is returned by NewCipher when the key is empty.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "rc4: invalid key size " + strconv.Itoa(int(k))
}

// WordSizeError is returned when the word width is outside 1..8.
type WordSizeError int

func (w WordSizeError) Error() string {
	return "rc4: invalid word size " + strconv.Itoa(int(w))
}

// Option configures a Cipher at construction time.
type Option func(*Cipher)

// WithTrace registers a callback that receives one event for the
// scheduled permutation and one per generated keystream symbol.
func WithTrace(fn trace.Func) Option {
	return func(c *Cipher) { c.trace = fn }
}

// Cipher holds the RC4 state for one key. Unlike the block ciphers in
// this module it is stateful: every XORKeyStream call advances the
// generator. It is not safe for concurrent use.
type Cipher struct {
	s     []byte
	i, j  int
	mask  int
	width int
	key   []byte
	pos   int
	trace trace.Func
}

// NewCipher returns a classic byte-wide (width 8) RC4 cipher for key.
func NewCipher(key []byte, opts ...Option) (*Cipher, error) {
	return NewCipherWidth(maxWidth, key, opts...)
}

// NewCipherWidth returns an RC4 cipher over width-bit words. The state
// is a permutation of 0..2^width-1; each byte of the key and of the
// data streams carries one width-bit symbol. Key symbols must fit the
// width.
func NewCipherWidth(width int, key []byte, opts ...Option) (*Cipher, error) {
	if width < 1 || width > maxWidth {
		return nil, WordSizeError(width)
	}
	if len(key) == 0 {
		return nil, KeySizeError(0)
	}
	for i, sym := range key {
		if int(sym) > (1<<width)-1 {
			return nil, fmt.Errorf("%w: symbol %d at index %d exceeds %d bits",
				ErrSymbolRange, sym, i, width)
		}
	}

	c := &Cipher{
		s:     make([]byte, 1<<width),
		mask:  1<<width - 1,
		width: width,
		key:   append([]byte(nil), key...),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.schedule()
	return c, nil
}

// Width returns the word width in bits.
func (c *Cipher) Width() int { return c.width }

// schedule runs the key-scheduling algorithm: one keyed swap per state
// entry, cycling the key.
func (c *Cipher) schedule() {
	for i := range c.s {
		c.s[i] = byte(i)
	}
	j := 0
	for i := range c.s {
		j = (j + int(c.s[i]) + int(c.key[i%len(c.key)])) & c.mask
		c.s[i], c.s[j] = c.s[j], c.s[i]
	}
	c.i, c.j, c.pos = 0, 0, 0
	if c.trace != nil {
		c.trace(trace.Event{
			Algorithm: "rc4",
			Op:        trace.OpKeySchedule,
			Round:     0,
			State:     append([]byte(nil), c.s...),
		})
	}
}

// Reset rewinds the keystream to its start by re-running the key
// schedule. The next XORKeyStream call sees the same symbols the first
// one did.
func (c *Cipher) Reset() {
	c.schedule()
}

// XORKeyStream XORs src with the next len(src) keystream symbols into
// dst. Only the low width bits of each byte are touched. Dst and src
// may overlap entirely; dst must be at least as long as src.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	if len(dst) < len(src) {
		panic("rc4: output smaller than input")
	}

	i, j := c.i, c.j
	for n, b := range src {
		i = (i + 1) & c.mask
		j = (j + int(c.s[i])) & c.mask
		c.s[i], c.s[j] = c.s[j], c.s[i]
		sym := c.s[(int(c.s[i])+int(c.s[j]))&c.mask]
		dst[n] = b ^ sym
		if c.trace != nil {
			c.trace(trace.Event{
				Algorithm: "rc4",
				Op:        trace.OpEncrypt,
				Round:     c.pos + n,
				State:     []byte{sym},
			})
		}
	}
	c.i, c.j = i, j
	c.pos += len(src)
}
