// Package schnorr implements Schnorr signatures over secp256k1 with
// textbook affine arithmetic.
//
// The signature equation is the classic one: the signer commits to a
// random nonce point R = kG, derives the challenge e by hashing R, the
// public key, and the message, and binds them with s = k + e*d mod n.
// Verification checks sG = R + eP. Point math is plain double-and-add
// on big.Int affine coordinates; it is not constant-time, which rules
// it out for anything but study. BIP-340 exists for production use.
package schnorr

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/cipherlab/cipherlab-go/hashes"
)

// secp256k1 parameters. The curve is y^2 = x^3 + 7 over GF(p); G
// generates a group of prime order n.
var (
	curveP = mustHexInt("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	curveN = mustHexInt("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	curveB = big.NewInt(7)
	genX   = mustHexInt("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	genY   = mustHexInt("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
)

var one = big.NewInt(1)

// ErrInvalidKey is returned for private scalars outside 1..n-1 and for
// public points not on the curve.
var ErrInvalidKey = errors.New("schnorr: invalid key")

func mustHexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("schnorr: bad curve constant " + s)
	}
	return v
}

// point is an affine curve point; nil means the point at infinity.
type point struct {
	x, y *big.Int
}

func generator() *point {
	return &point{x: new(big.Int).Set(genX), y: new(big.Int).Set(genY)}
}

// onCurve reports whether p satisfies y^2 = x^3 + 7 mod P.
func onCurve(p *point) bool {
	if p == nil {
		return true
	}
	if p.x == nil || p.y == nil {
		return false
	}
	y2 := new(big.Int).Mul(p.y, p.y)
	y2.Mod(y2, curveP)
	x3 := new(big.Int).Mul(p.x, p.x)
	x3.Mul(x3, p.x)
	x3.Add(x3, curveB)
	x3.Mod(x3, curveP)
	return y2.Cmp(x3) == 0
}

// add returns p1 + p2 with the affine chord-and-tangent formulas.
func add(p1, p2 *point) *point {
	if p1 == nil {
		return p2
	}
	if p2 == nil {
		return p1
	}

	var s *big.Int
	if p1.x.Cmp(p2.x) == 0 {
		if p1.y.Cmp(p2.y) != 0 {
			// Mirror points cancel.
			return nil
		}
		// Tangent slope 3x^2 / 2y.
		num := new(big.Int).Mul(p1.x, p1.x)
		num.Mul(num, big.NewInt(3))
		den := new(big.Int).Lsh(p1.y, 1)
		s = num.Mul(num, modInverse(den, curveP))
	} else {
		// Chord slope (y2-y1) / (x2-x1).
		num := new(big.Int).Sub(p2.y, p1.y)
		den := new(big.Int).Sub(p2.x, p1.x)
		s = num.Mul(num, modInverse(den, curveP))
	}
	s.Mod(s, curveP)

	x3 := new(big.Int).Mul(s, s)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, p2.x)
	x3.Mod(x3, curveP)

	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, s)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, curveP)

	return &point{x: x3, y: y3}
}

// scalarMult returns k*p by double-and-add from the low bit up.
func scalarMult(k *big.Int, p *point) *point {
	var result *point
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = add(result, addend)
		}
		addend = add(addend, addend)
	}
	return result
}

// modInverse computes a^-1 mod m iteratively; m is prime here, so the
// inverse exists for any a not divisible by m.
func modInverse(a, m *big.Int) *big.Int {
	r0 := new(big.Int).Mod(a, m)
	r1 := new(big.Int).Set(m)
	s0 := big.NewInt(1)
	s1 := big.NewInt(0)
	for r1.Sign() != 0 {
		q := new(big.Int).Quo(r0, r1)
		r0.Sub(r0, new(big.Int).Mul(q, r1))
		r0, r1 = r1, r0
		s0.Sub(s0, new(big.Int).Mul(q, s1))
		s0, s1 = s1, s0
	}
	return s0.Mod(s0, m)
}

// PublicKey is a point on secp256k1.
type PublicKey struct {
	X, Y *big.Int
}

// PrivateKey is a scalar in 1..n-1 with its public point.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

// Signature is a nonce point R and the binding scalar S.
type Signature struct {
	RX, RY *big.Int
	S      *big.Int
}

// GenerateKey draws a private scalar from rng and derives its public
// point. A nil rng uses crypto/rand.
func GenerateKey(rng io.Reader) (*PrivateKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	d, err := rand.Int(rng, new(big.Int).Sub(curveN, one))
	if err != nil {
		return nil, err
	}
	d.Add(d, one)
	return NewPrivateKey(d)
}

// NewPrivateKey builds the key pair for a given scalar d in 1..n-1.
func NewPrivateKey(d *big.Int) (*PrivateKey, error) {
	if d == nil || d.Sign() <= 0 || d.Cmp(curveN) >= 0 {
		return nil, ErrInvalidKey
	}
	pub := scalarMult(d, generator())
	return &PrivateKey{
		PublicKey: PublicKey{X: pub.x, Y: pub.y},
		D:         new(big.Int).Set(d),
	}, nil
}

// challenge computes e = H(Rx || Px || Py || m) mod n with each
// coordinate as 32 big-endian bytes.
func challenge(rx, px, py *big.Int, message []byte) *big.Int {
	buf := make([]byte, 0, 96+len(message))
	buf = append(buf, rx.FillBytes(make([]byte, 32))...)
	buf = append(buf, px.FillBytes(make([]byte, 32))...)
	buf = append(buf, py.FillBytes(make([]byte, 32))...)
	buf = append(buf, message...)
	sum := hashes.SumSHA256(buf)
	e := new(big.Int).SetBytes(sum[:])
	return e.Mod(e, curveN)
}

// Sign signs message with priv. The nonce comes from rng (crypto/rand
// when nil); the same nonce must never sign two messages, since two
// such signatures solve for the private key linearly.
func Sign(rng io.Reader, priv *PrivateKey, message []byte) (*Signature, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if priv == nil || priv.D == nil || priv.D.Sign() <= 0 || priv.D.Cmp(curveN) >= 0 {
		return nil, ErrInvalidKey
	}

	k, err := rand.Int(rng, new(big.Int).Sub(curveN, one))
	if err != nil {
		return nil, err
	}
	k.Add(k, one)

	r := scalarMult(k, generator())
	e := challenge(r.x, priv.X, priv.Y, message)

	s := new(big.Int).Mul(e, priv.D)
	s.Add(s, k)
	s.Mod(s, curveN)

	return &Signature{RX: r.x, RY: r.y, S: s}, nil
}

// Verify reports whether sig is a valid signature of message under
// pub, by checking sG = R + eP.
func Verify(pub *PublicKey, message []byte, sig *Signature) bool {
	if pub == nil || sig == nil ||
		pub.X == nil || pub.Y == nil ||
		sig.RX == nil || sig.RY == nil || sig.S == nil {
		return false
	}
	if sig.S.Sign() < 0 || sig.S.Cmp(curveN) >= 0 {
		return false
	}
	pp := &point{x: pub.X, y: pub.Y}
	rp := &point{x: sig.RX, y: sig.RY}
	if !onCurve(pp) || !onCurve(rp) {
		return false
	}

	e := challenge(sig.RX, pub.X, pub.Y, message)
	left := scalarMult(sig.S, generator())
	right := add(rp, scalarMult(e, pp))
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	return left.x.Cmp(right.x) == 0 && left.y.Cmp(right.y) == 0
}
