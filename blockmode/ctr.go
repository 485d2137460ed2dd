package blockmode

import "crypto/cipher"

// counterBytes is the width of the block counter occupying the tail of
// each counter block; the leading bytes carry the caller's nonce.
const counterBytes = 8

type ctr struct {
	b       cipher.Block
	ctr     []byte // nonce || counter, encrypted to produce keystream
	out     []byte // keystream for the current counter value
	outUsed int
}

// NewCTR returns a Stream which encrypts or decrypts by XORing with
// the keystream E(nonce || counter). The iv must be one full block:
// its leading bytes are the caller's nonce and its trailing 8 bytes
// are the initial counter value. The counter increments once per
// block, little-endian byte-wise with carry, and never touches the
// nonce bytes. Encryption and decryption are the same operation.
func NewCTR(b cipher.Block, iv []byte) cipher.Stream {
	if len(iv) != b.BlockSize() {
		panic("blockmode: IV length must equal block size")
	}
	if b.BlockSize() < counterBytes {
		panic("blockmode: block size too small for the counter")
	}
	return &ctr{
		b:       b,
		ctr:     append([]byte(nil), iv...),
		out:     make([]byte, b.BlockSize()),
		outUsed: b.BlockSize(), // force a refill on first use
	}
}

func (x *ctr) refill() {
	x.b.Encrypt(x.out, x.ctr)
	// Low byte first: bump and stop at the first byte that does not
	// wrap to zero.
	for i := len(x.ctr) - counterBytes; i < len(x.ctr); i++ {
		x.ctr[i]++
		if x.ctr[i] != 0 {
			break
		}
	}
	x.outUsed = 0
}

// XORKeyStream XORs src with the keystream into dst. It panics when
// dst is shorter than src. The keystream position carries over between
// calls, so splitting one message across calls gives the same result
// as a single call.
func (x *ctr) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("blockmode: output smaller than input")
	}
	for i, b := range src {
		if x.outUsed == len(x.out) {
			x.refill()
		}
		dst[i] = b ^ x.out[x.outUsed]
		x.outUsed++
	}
}
