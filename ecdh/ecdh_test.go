package ecdh

import (
	"bytes"
	"encoding/hex"
	mrand "math/rand"
	"testing"
)

// Key pairs and shared secret from RFC 7748 section 6.1.
var (
	rfcAlicePriv = mustHex("77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	rfcAlicePub  = mustHex("8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a")
	rfcBobPriv   = mustHex("5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")
	rfcBobPub    = mustHex("de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f")
	rfcShared    = mustHex("4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742")
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestRFC7748Vector(t *testing.T) {
	alice, err := NewKeyPairFromPrivate(rfcAlicePriv)
	if err != nil {
		t.Fatalf("NewKeyPairFromPrivate(alice): %v", err)
	}
	if !bytes.Equal(alice.Public, rfcAlicePub) {
		t.Errorf("alice public key = %x, want %x", alice.Public, rfcAlicePub)
	}

	bob, err := NewKeyPairFromPrivate(rfcBobPriv)
	if err != nil {
		t.Fatalf("NewKeyPairFromPrivate(bob): %v", err)
	}
	if !bytes.Equal(bob.Public, rfcBobPub) {
		t.Errorf("bob public key = %x, want %x", bob.Public, rfcBobPub)
	}

	fromAlice, err := SharedSecret(alice.Private, bob.Public)
	if err != nil {
		t.Fatalf("SharedSecret(alice, bob): %v", err)
	}
	if !bytes.Equal(fromAlice, rfcShared) {
		t.Errorf("alice shared secret = %x, want %x", fromAlice, rfcShared)
	}

	fromBob, err := SharedSecret(bob.Private, alice.Public)
	if err != nil {
		t.Fatalf("SharedSecret(bob, alice): %v", err)
	}
	if !bytes.Equal(fromBob, rfcShared) {
		t.Errorf("bob shared secret = %x, want %x", fromBob, rfcShared)
	}
}

func TestBothSidesAgree(t *testing.T) {
	rng := mrand.New(mrand.NewSource(31))

	alice, err := GenerateKeyPair(rng)
	if err != nil {
		t.Fatalf("GenerateKeyPair(alice): %v", err)
	}
	bob, err := GenerateKeyPair(rng)
	if err != nil {
		t.Fatalf("GenerateKeyPair(bob): %v", err)
	}
	if bytes.Equal(alice.Private, bob.Private) {
		t.Fatal("two generated key pairs share a private key")
	}

	fromAlice, err := SharedSecret(alice.Private, bob.Public)
	if err != nil {
		t.Fatalf("SharedSecret(alice, bob): %v", err)
	}
	fromBob, err := SharedSecret(bob.Private, alice.Public)
	if err != nil {
		t.Fatalf("SharedSecret(bob, alice): %v", err)
	}
	if !bytes.Equal(fromAlice, fromBob) {
		t.Errorf("shared secrets differ: %x vs %x", fromAlice, fromBob)
	}
	if bytes.Equal(fromAlice, make([]byte, KeySize)) {
		t.Error("shared secret is all zeros")
	}
}

func TestGenerateKeyPairDefaultRand(t *testing.T) {
	kp, err := GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair(nil): %v", err)
	}
	if len(kp.Public) != KeySize || len(kp.Private) != KeySize {
		t.Fatalf("key sizes = %d, %d, want %d", len(kp.Public), len(kp.Private), KeySize)
	}

	again, err := NewKeyPairFromPrivate(kp.Private)
	if err != nil {
		t.Fatalf("NewKeyPairFromPrivate: %v", err)
	}
	if !bytes.Equal(again.Public, kp.Public) {
		t.Errorf("rederived public key = %x, want %x", again.Public, kp.Public)
	}
}

func TestLowOrderPeerRejected(t *testing.T) {
	zero := make([]byte, KeySize)
	_, err := SharedSecret(rfcAlicePriv, zero)
	if err != ErrLowOrderPoint {
		t.Errorf("SharedSecret with zero peer key: err = %v, want ErrLowOrderPoint", err)
	}
}

func TestKeySizeErrors(t *testing.T) {
	short := make([]byte, KeySize-1)

	if _, err := NewKeyPairFromPrivate(short); err != ErrKeySize {
		t.Errorf("NewKeyPairFromPrivate(short): err = %v, want ErrKeySize", err)
	}
	if _, err := SharedSecret(short, rfcBobPub); err != ErrKeySize {
		t.Errorf("SharedSecret(short priv): err = %v, want ErrKeySize", err)
	}
	if _, err := SharedSecret(rfcAlicePriv, short); err != ErrKeySize {
		t.Errorf("SharedSecret(short pub): err = %v, want ErrKeySize", err)
	}
}

func BenchmarkSharedSecret(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := SharedSecret(rfcAlicePriv, rfcBobPub); err != nil {
			b.Fatal(err)
		}
	}
}
