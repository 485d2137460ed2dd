package hashes

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// MD5Size is the size of an MD5 digest in bytes.
const MD5Size = 16

const md5BlockSize = 64

// md5K holds floor(abs(sin(i+1)) * 2^32) for i in 0..63 (RFC 1321).
var md5K = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// md5Shift holds the per-operation rotation amounts, four per round
// quarter, each repeated down its quarter.
var md5Shift = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

type md5Digest struct {
	h   [4]uint32
	x   [md5BlockSize]byte
	nx  int
	len uint64
}

// NewMD5 returns a new MD5 hash.
func NewMD5() hash.Hash {
	d := &md5Digest{}
	d.Reset()
	return d
}

// SumMD5 returns the MD5 digest of data in one call.
func SumMD5(data []byte) [MD5Size]byte {
	d := md5Digest{}
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *md5Digest) Reset() {
	d.h = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}
	d.nx = 0
	d.len = 0
}

func (d *md5Digest) Size() int { return MD5Size }

func (d *md5Digest) BlockSize() int { return md5BlockSize }

func (d *md5Digest) Write(p []byte) (n int, err error) {
	n = len(p)
	d.len += uint64(n)
	if d.nx > 0 {
		c := copy(d.x[d.nx:], p)
		d.nx += c
		if d.nx == md5BlockSize {
			d.block(d.x[:])
			d.nx = 0
		}
		p = p[c:]
	}
	if len(p) >= md5BlockSize {
		full := len(p) &^ (md5BlockSize - 1)
		d.block(p[:full])
		p = p[full:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return n, nil
}

func (d *md5Digest) Sum(in []byte) []byte {
	// Finish a copy so the caller can keep writing.
	d2 := *d
	sum := d2.checkSum()
	return append(in, sum[:]...)
}

func (d *md5Digest) checkSum() [MD5Size]byte {
	msgLen := d.len
	var tmp [1 + 63 + 8]byte
	tmp[0] = 0x80
	pad := (55 - msgLen) % 64
	binary.LittleEndian.PutUint64(tmp[1+pad:], msgLen<<3)
	d.Write(tmp[:1+pad+8])

	var out [MD5Size]byte
	for i, h := range d.h {
		binary.LittleEndian.PutUint32(out[4*i:], h)
	}
	return out
}

// block runs the 64-operation compression function over each full
// 64-byte block in p.
func (d *md5Digest) block(p []byte) {
	h0, h1, h2, h3 := d.h[0], d.h[1], d.h[2], d.h[3]
	for len(p) >= md5BlockSize {
		var m [16]uint32
		for i := range m {
			m[i] = binary.LittleEndian.Uint32(p[4*i:])
		}

		a, b, c, dd := h0, h1, h2, h3
		for i := 0; i < 64; i++ {
			var f uint32
			var g int
			switch {
			case i < 16:
				f = (b & c) | (^b & dd)
				g = i
			case i < 32:
				f = (dd & b) | (^dd & c)
				g = (5*i + 1) % 16
			case i < 48:
				f = b ^ c ^ dd
				g = (3*i + 5) % 16
			default:
				f = c ^ (b | ^dd)
				g = (7 * i) % 16
			}
			f += a + md5K[i] + m[g]
			a, dd, c, b = dd, c, b, b+bits.RotateLeft32(f, md5Shift[i])
		}

		h0 += a
		h1 += b
		h2 += c
		h3 += dd
		p = p[md5BlockSize:]
	}
	d.h[0], d.h[1], d.h[2], d.h[3] = h0, h1, h2, h3
}
