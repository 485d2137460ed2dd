// Package shamir implements Shamir's secret sharing over a
// caller-chosen prime field.
//
// A secret becomes the constant term of a random polynomial of degree
// threshold-1; shares are points on that polynomial at x = 1..parts.
// Any threshold points determine the polynomial, so Lagrange
// interpolation at zero recovers the secret. Fewer points determine
// nothing: Combine still returns a value, it just has no relation to
// the secret. That silence is the scheme's security property, not an
// error this package can detect.
package shamir

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrThreshold is returned when the threshold is below 2 or above the
// number of parts.
var ErrThreshold = errors.New("shamir: threshold must be between 2 and parts")

// ErrNotPrime is returned when the field modulus is not prime.
var ErrNotPrime = errors.New("shamir: modulus is not prime")

// ErrSecretRange is returned when the secret is negative or not below
// the modulus.
var ErrSecretRange = errors.New("shamir: secret outside field range")

// ErrTooManyParts is returned when parts is not below the modulus, so
// the share x-coordinates could not all be distinct field elements.
var ErrTooManyParts = errors.New("shamir: parts must be smaller than the modulus")

// ErrTooFewShares is returned by Combine for fewer than two shares.
var ErrTooFewShares = errors.New("shamir: need at least two shares")

// ErrShareRange is returned for a share coordinate outside the field.
var ErrShareRange = errors.New("shamir: share outside field range")

// ErrDuplicateShare is returned when two shares carry the same x.
var ErrDuplicateShare = errors.New("shamir: duplicate share x")

var one = big.NewInt(1)

// Share is one evaluation point (X, Y) of the sharing polynomial.
type Share struct {
	X *big.Int
	Y *big.Int
}

// Split shares secret into parts shares of which any threshold
// reconstruct it, over the field defined by prime. Polynomial
// coefficients are drawn from rng; a nil rng uses crypto/rand.
func Split(rng io.Reader, secret *big.Int, parts, threshold int, prime *big.Int) ([]Share, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if threshold < 2 || threshold > parts {
		return nil, fmt.Errorf("%w: threshold %d, parts %d", ErrThreshold, threshold, parts)
	}
	if prime == nil || !prime.ProbablyPrime(64) {
		return nil, ErrNotPrime
	}
	if secret.Sign() < 0 || secret.Cmp(prime) >= 0 {
		return nil, ErrSecretRange
	}
	if big.NewInt(int64(parts)).Cmp(prime) >= 0 {
		return nil, ErrTooManyParts
	}

	// coeffs[0] is the secret; the rest are uniform in 1..prime-1.
	coeffs := make([]*big.Int, threshold)
	coeffs[0] = new(big.Int).Set(secret)
	pMinusOne := new(big.Int).Sub(prime, one)
	for i := 1; i < threshold; i++ {
		c, err := rand.Int(rng, pMinusOne)
		if err != nil {
			return nil, fmt.Errorf("shamir: drawing coefficient: %w", err)
		}
		coeffs[i] = c.Add(c, one)
	}

	shares := make([]Share, parts)
	for i := range shares {
		x := big.NewInt(int64(i + 1))
		shares[i] = Share{X: x, Y: evalPoly(coeffs, x, prime)}
	}
	return shares, nil
}

// evalPoly evaluates the polynomial at x by Horner's rule mod prime.
func evalPoly(coeffs []*big.Int, x, prime *big.Int) *big.Int {
	y := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		y.Mul(y, x)
		y.Add(y, coeffs[i])
		y.Mod(y, prime)
	}
	return y
}

// Combine interpolates the polynomial through the given shares at zero
// and returns the constant term. Pass exactly the threshold many
// shares used at Split time; extra shares over-determine the same
// polynomial and also work, fewer yield an unrelated value.
func Combine(shares []Share, prime *big.Int) (*big.Int, error) {
	if len(shares) < 2 {
		return nil, ErrTooFewShares
	}
	if prime == nil || !prime.ProbablyPrime(64) {
		return nil, ErrNotPrime
	}
	seen := make(map[string]bool, len(shares))
	for _, s := range shares {
		if s.X == nil || s.Y == nil ||
			s.X.Sign() <= 0 || s.X.Cmp(prime) >= 0 ||
			s.Y.Sign() < 0 || s.Y.Cmp(prime) >= 0 {
			return nil, ErrShareRange
		}
		key := s.X.String()
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateShare, key)
		}
		seen[key] = true
	}

	secret := new(big.Int)
	num := new(big.Int)
	den := new(big.Int)
	tmp := new(big.Int)
	for i, si := range shares {
		num.SetInt64(1)
		den.SetInt64(1)
		for j, sj := range shares {
			if i == j {
				continue
			}
			// Basis polynomial at zero: prod (0 - xj) / (xi - xj).
			num.Mul(num, tmp.Neg(sj.X))
			num.Mod(num, prime)
			den.Mul(den, tmp.Sub(si.X, sj.X))
			den.Mod(den, prime)
		}
		inv, err := modInverse(den, prime)
		if err != nil {
			return nil, err
		}
		tmp.Mul(si.Y, num)
		tmp.Mul(tmp, inv)
		secret.Add(secret, tmp)
		secret.Mod(secret, prime)
	}
	return secret, nil
}

// modInverse computes a's multiplicative inverse mod m with the
// iterative extended Euclidean algorithm, tracking only the Bezout
// coefficient of a.
func modInverse(a, m *big.Int) (*big.Int, error) {
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
	if r0.Cmp(one) != 0 {
		return nil, fmt.Errorf("shamir: %s has no inverse mod %s", a, m)
	}
	return s0.Mod(s0, m), nil
}
