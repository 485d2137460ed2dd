// Package gf implements byte arithmetic over GF(2^8).
//
// The field is parameterized by its reduction polynomial so the same
// routine serves both the AES column mixing (0x11B) and the Twofish
// MDS matrix (0x169).
package gf

// Reduction polynomials, written with the x^8 term included.
const (
	// PolyAES is x^8 + x^4 + x^3 + x + 1, the Rijndael polynomial.
	PolyAES = 0x11B
	// PolyTwofish is x^8 + x^6 + x^5 + x^3 + 1, used by the Twofish MDS.
	PolyTwofish = 0x169
)

// Mul returns the product of a and b in GF(2^8) reduced by poly.
// Shift-and-add peasant multiplication; one conditional reduction
// per doubling keeps every intermediate inside 9 bits.
func Mul(a, b byte, poly uint16) byte {
	x := uint16(a)
	y := uint16(b)
	var p uint16
	for y > 0 {
		if y&1 != 0 {
			p ^= x
		}
		x <<= 1
		if x&0x100 != 0 {
			x ^= poly
		}
		y >>= 1
	}
	return byte(p)
}

// Double returns 2*a in GF(2^8) reduced by poly.
func Double(a byte, poly uint16) byte {
	x := uint16(a) << 1
	if x&0x100 != 0 {
		x ^= poly
	}
	return byte(x)
}
