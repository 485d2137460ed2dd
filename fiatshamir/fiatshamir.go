// Package fiatshamir implements the Feige-Fiat-Shamir zero-knowledge
// identification protocol.
//
// The prover holds k secrets coprime to a composite modulus n = p*q;
// the verifier knows only their squares. One round: the prover commits
// x = r^2, the verifier challenges with k bits, the prover answers
// y = r * prod(s_i^e_i), and the verifier checks
// y^2 = x * prod(v_i^e_i). A cheater who guesses the challenge wins
// the round, so soundness comes from repetition: t rounds leave a
// 2^-t chance. The package also carries the Fiat-Shamir transform,
// which replaces the verifier's bits with hash output to make the
// proof non-interactive.
package fiatshamir

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cipherlab/cipherlab-go/hashes"
)

// ErrParams is returned for an unusable modulus or secret count.
var ErrParams = errors.New("fiatshamir: invalid parameters")

// ErrChallenge is returned when a challenge has the wrong length or
// non-bit entries.
var ErrChallenge = errors.New("fiatshamir: malformed challenge")

// ErrNotCoprime is returned by NewPrivateKey for a secret sharing a
// factor with the modulus.
var ErrNotCoprime = errors.New("fiatshamir: secret not coprime to modulus")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// PublicKey identifies a prover: the modulus and the squares of the
// secrets.
type PublicKey struct {
	N *big.Int
	V []*big.Int
}

// PrivateKey adds the secrets themselves.
type PrivateKey struct {
	PublicKey
	S []*big.Int
}

// Commitment is one round's opening move. X travels to the verifier;
// the witness r stays with the prover.
type Commitment struct {
	X *big.Int
	r *big.Int
}

// Proof is a non-interactive transcript: one commitment and one
// response per round, with challenges recomputed from the hash.
type Proof struct {
	X []*big.Int
	Y []*big.Int
}

// GenerateKey draws k secrets coprime to n from rng and squares them
// into the public key. A nil rng uses crypto/rand.
func GenerateKey(rng io.Reader, n *big.Int, k int) (*PrivateKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if n == nil || n.Cmp(big.NewInt(4)) <= 0 || k < 1 {
		return nil, fmt.Errorf("%w: need n > 4 and k >= 1", ErrParams)
	}

	secrets := make([]*big.Int, k)
	for i := range secrets {
		s, err := drawCoprime(rng, n)
		if err != nil {
			return nil, err
		}
		secrets[i] = s
	}
	return NewPrivateKey(n, secrets)
}

// NewPrivateKey builds a key pair from caller-chosen secrets, each in
// 2..n-1 and coprime to n.
func NewPrivateKey(n *big.Int, secrets []*big.Int) (*PrivateKey, error) {
	if n == nil || n.Cmp(big.NewInt(4)) <= 0 || len(secrets) == 0 {
		return nil, fmt.Errorf("%w: need n > 4 and at least one secret", ErrParams)
	}

	priv := &PrivateKey{
		PublicKey: PublicKey{
			N: new(big.Int).Set(n),
			V: make([]*big.Int, len(secrets)),
		},
		S: make([]*big.Int, len(secrets)),
	}
	gcd := new(big.Int)
	for i, s := range secrets {
		if s == nil || s.Cmp(two) < 0 || s.Cmp(n) >= 0 {
			return nil, fmt.Errorf("%w: secret %d out of range", ErrParams, i)
		}
		if gcd.GCD(nil, nil, s, n); gcd.Cmp(one) != 0 {
			return nil, fmt.Errorf("%w: secret %d", ErrNotCoprime, i)
		}
		priv.S[i] = new(big.Int).Set(s)
		priv.V[i] = new(big.Int).Exp(s, two, n)
	}
	return priv, nil
}

// drawCoprime samples uniformly from 2..n-1 until the draw is coprime
// to n. The retry cap only trips on moduli dense with small factors,
// which no honest p*q is.
func drawCoprime(rng io.Reader, n *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(n, two)
	gcd := new(big.Int)
	for tries := 0; tries < 128; tries++ {
		s, err := rand.Int(rng, span)
		if err != nil {
			return nil, fmt.Errorf("fiatshamir: drawing secret: %w", err)
		}
		s.Add(s, two)
		if gcd.GCD(nil, nil, s, n); gcd.Cmp(one) == 0 {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: could not find value coprime to modulus", ErrParams)
}

// Commit opens a round: draw a witness r and send its square.
func (priv *PrivateKey) Commit(rng io.Reader) (*Commitment, error) {
	if rng == nil {
		rng = rand.Reader
	}
	r, err := drawCoprime(rng, priv.N)
	if err != nil {
		return nil, err
	}
	return &Commitment{X: new(big.Int).Exp(r, two, priv.N), r: r}, nil
}

// NewChallenge draws k random bits, the verifier's half of a round.
func NewChallenge(rng io.Reader, k int) ([]int, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k = %d", ErrParams, k)
	}
	buf := make([]byte, (k+7)/8)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("fiatshamir: drawing challenge: %w", err)
	}
	bits := make([]int, k)
	for i := range bits {
		bits[i] = int(buf[i/8]>>(i%8)) & 1
	}
	return bits, nil
}

// Respond answers a challenge: multiply the witness by each secret the
// challenge selects.
func (priv *PrivateKey) Respond(c *Commitment, challenge []int) (*big.Int, error) {
	if c == nil || c.r == nil {
		return nil, fmt.Errorf("%w: missing commitment witness", ErrChallenge)
	}
	if len(challenge) != len(priv.S) {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrChallenge, len(challenge), len(priv.S))
	}
	y := new(big.Int).Set(c.r)
	for i, e := range challenge {
		switch e {
		case 0:
		case 1:
			y.Mul(y, priv.S[i])
			y.Mod(y, priv.N)
		default:
			return nil, fmt.Errorf("%w: entry %d is %d", ErrChallenge, i, e)
		}
	}
	return y, nil
}

// VerifyRound checks one round: y^2 must equal x times the selected
// public squares.
func (pub *PublicKey) VerifyRound(x *big.Int, challenge []int, y *big.Int) bool {
	if x == nil || y == nil || len(challenge) != len(pub.V) {
		return false
	}
	if x.Sign() <= 0 || x.Cmp(pub.N) >= 0 || y.Sign() <= 0 || y.Cmp(pub.N) >= 0 {
		return false
	}

	left := new(big.Int).Exp(y, two, pub.N)
	right := new(big.Int).Set(x)
	for i, e := range challenge {
		switch e {
		case 0:
		case 1:
			right.Mul(right, pub.V[i])
			right.Mod(right, pub.N)
		default:
			return false
		}
	}
	return left.Cmp(right) == 0
}

// Prove runs rounds of the protocol non-interactively, deriving the
// challenge bits from a hash over the message, the commitments, and
// the public key.
func (priv *PrivateKey) Prove(rng io.Reader, message []byte, rounds int) (*Proof, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("%w: rounds = %d", ErrParams, rounds)
	}

	proof := &Proof{
		X: make([]*big.Int, rounds),
		Y: make([]*big.Int, rounds),
	}
	commits := make([]*Commitment, rounds)
	for i := range commits {
		c, err := priv.Commit(rng)
		if err != nil {
			return nil, err
		}
		commits[i] = c
		proof.X[i] = c.X
	}

	k := len(priv.S)
	bits := deriveBits(challengeSeed(message, proof.X, &priv.PublicKey), rounds*k)
	for i := range commits {
		y, err := priv.Respond(commits[i], bits[i*k:(i+1)*k])
		if err != nil {
			return nil, err
		}
		proof.Y[i] = y
	}
	return proof, nil
}

// VerifyProof recomputes the challenge bits and checks every round.
func (pub *PublicKey) VerifyProof(message []byte, proof *Proof) bool {
	if proof == nil || len(proof.X) == 0 || len(proof.X) != len(proof.Y) {
		return false
	}
	k := len(pub.V)
	bits := deriveBits(challengeSeed(message, proof.X, pub), len(proof.X)*k)
	for i := range proof.X {
		if !pub.VerifyRound(proof.X[i], bits[i*k:(i+1)*k], proof.Y[i]) {
			return false
		}
	}
	return true
}

// challengeSeed hashes the message, commitments, and public key into
// the seed the challenge bits are stretched from. Every integer is
// length-prefixed so adjacent values cannot be reparsed as each other.
func challengeSeed(message []byte, commitments []*big.Int, pub *PublicKey) []byte {
	h := hashes.NewSHA256()
	writeInt := func(v *big.Int) {
		b := v.Bytes()
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(b)))
		h.Write(n[:])
		h.Write(b)
	}
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(message)))
	h.Write(n[:])
	h.Write(message)
	for _, x := range commitments {
		writeInt(x)
	}
	writeInt(pub.N)
	for _, v := range pub.V {
		writeInt(v)
	}
	return h.Sum(nil)
}

// deriveBits stretches a seed into count bits by hashing it with a
// running counter.
func deriveBits(seed []byte, count int) []int {
	bits := make([]int, 0, count)
	var counter uint32
	for len(bits) < count {
		buf := make([]byte, len(seed)+4)
		copy(buf, seed)
		binary.BigEndian.PutUint32(buf[len(seed):], counter)
		sum := hashes.SumSHA256(buf)
		for _, b := range sum {
			for j := 7; j >= 0 && len(bits) < count; j-- {
				bits = append(bits, int(b>>j)&1)
			}
		}
		counter++
	}
	return bits
}
