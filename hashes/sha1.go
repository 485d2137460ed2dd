package hashes

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// SHA1Size is the size of a SHA-1 digest in bytes.
const SHA1Size = 20

const sha1BlockSize = 64

// Stage constants, one per 20-operation quarter.
const (
	sha1K0 = 0x5a827999
	sha1K1 = 0x6ed9eba1
	sha1K2 = 0x8f1bbcdc
	sha1K3 = 0xca62c1d6
)

type sha1Digest struct {
	h   [5]uint32
	x   [sha1BlockSize]byte
	nx  int
	len uint64
}

// NewSHA1 returns a new SHA-1 hash.
func NewSHA1() hash.Hash {
	d := &sha1Digest{}
	d.Reset()
	return d
}

// SumSHA1 returns the SHA-1 digest of data in one call.
func SumSHA1(data []byte) [SHA1Size]byte {
	d := sha1Digest{}
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *sha1Digest) Reset() {
	d.h = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}
	d.nx = 0
	d.len = 0
}

func (d *sha1Digest) Size() int { return SHA1Size }

func (d *sha1Digest) BlockSize() int { return sha1BlockSize }

func (d *sha1Digest) Write(p []byte) (n int, err error) {
	n = len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == sha1BlockSize {
			d.block(d.x[:])
			d.nx = 0
		}
		p = p[c:]
	}
	if len(p) >= sha1BlockSize {
		full := len(p) &^ (sha1BlockSize - 1)
		d.block(p[:full])
		p = p[full:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

func (d *sha1Digest) Sum(in []byte) []byte {
	d2 := *d
	sum := d2.checkSum()
	return append(in, sum[:]...)
}

func (d *sha1Digest) checkSum() [SHA1Size]byte {
	msgLen := d.len
	var tmp [1 + 63 + 8]byte
	tmp[0] = 0x80
	pad := (55 - msgLen) % 64
	binary.BigEndian.PutUint64(tmp[1+pad:], msgLen<<3)
	d.Write(tmp[:1+pad+8])

	var out [SHA1Size]byte
	for i, h := range d.h {
		binary.BigEndian.PutUint32(out[4*i:], h)
	}
	return out
}

// block expands each 64-byte block into the 80-word schedule and runs
// the four 20-operation stages.
func (d *sha1Digest) block(p []byte) {
	h0, h1, h2, h3, h4 := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]
	for len(p) >= sha1BlockSize {
		var w [80]uint32
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[4*i:])
		}
		for i := 16; i < 80; i++ {
			w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
		}

		a, b, c, dd, e := h0, h1, h2, h3, h4
		for i := 0; i < 80; i++ {
			var f, k uint32
			switch {
			case i < 20:
				f = dd ^ (b & (c ^ dd))
				k = sha1K0
			case i < 40:
				f = b ^ c ^ dd
				k = sha1K1
			case i < 60:
				f = (b & c) | (b & dd) | (c & dd)
				k = sha1K2
			default:
				f = b ^ c ^ dd
				k = sha1K3
			}
			a, b, c, dd, e =
				bits.RotateLeft32(a, 5)+f+e+k+w[i],
				a,
				bits.RotateLeft32(b, 30),
				c,
				dd
		}

		h0 += a
		h1 += b
		h2 += c
		h3 += dd
		h4 += e
		p = p[sha1BlockSize:]
	}
	d.h[0], d.h[1], d.h[2], d.h[3], d.h[4] = h0, h1, h2, h3, h4
}
