package hashes

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// SHA256Size is the size of a SHA-256 digest in bytes.
const SHA256Size = 32

const sha256BlockSize = 64

// sha256K holds the cube-root constants of the first 64 primes
// (FIPS 180-4 §4.2.2).
var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

type sha256Digest struct {
	h   [8]uint32
	x   [sha256BlockSize]byte
	nx  int
	len uint64
}

// NewSHA256 returns a new SHA-256 hash.
func NewSHA256() hash.Hash {
	d := &sha256Digest{}
	d.Reset()
	return d
}

// SumSHA256 returns the SHA-256 digest of data in one call.
func SumSHA256(data []byte) [SHA256Size]byte {
	d := sha256Digest{}
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *sha256Digest) Reset() {
	// Square-root constants of the first 8 primes.
	d.h = [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	}
	d.nx = 0
	d.len = 0
}

func (d *sha256Digest) Size() int { return SHA256Size }

func (d *sha256Digest) BlockSize() int { return sha256BlockSize }

func (d *sha256Digest) Write(p []byte) (n int, err error) {
	n = len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == sha256BlockSize {
			d.block(d.x[:])
			d.nx = 0
		}
		p = p[c:]
	}
	if len(p) >= sha256BlockSize {
		full := len(p) &^ (sha256BlockSize - 1)
		d.block(p[:full])
		p = p[full:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

func (d *sha256Digest) Sum(in []byte) []byte {
	d2 := *d
	sum := d2.checkSum()
	return append(in, sum[:]...)
}

func (d *sha256Digest) checkSum() [SHA256Size]byte {
	msgLen := d.len
	var tmp [1 + 63 + 8]byte
	tmp[0] = 0x80
	pad := (55 - msgLen) % 64
	binary.BigEndian.PutUint64(tmp[1+pad:], msgLen<<3)
	d.Write(tmp[:1+pad+8])

	var out [SHA256Size]byte
	for i, h := range d.h {
		binary.BigEndian.PutUint32(out[4*i:], h)
	}
	return out
}

// block extends each 64-byte block into the 64-word schedule and runs
// the compression loop over the eight working registers.
func (d *sha256Digest) block(p []byte) {
	h := d.h
	for len(p) >= sha256BlockSize {
		var w [64]uint32
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[4*i:])
		}
		for i := 16; i < 64; i++ {
			s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
			s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
			w[i] = w[i-16] + s0 + w[i-7] + s1
		}

		a, b, c, dd, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
		for i := 0; i < 64; i++ {
			s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
			ch := (e & f) ^ (^e & g)
			t1 := hh + s1 + ch + sha256K[i] + w[i]
			s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
			maj := (a & b) ^ (a & c) ^ (b & c)
			t2 := s0 + maj

			hh = g
			g = f
			f = e
			e = dd + t1
			dd = c
			c = b
			b = a
			a = t1 + t2
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += dd
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += hh
		p = p[sha256BlockSize:]
	}
	d.h = h
}
