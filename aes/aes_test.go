package aes

import (
	"bytes"
	stdaes "crypto/aes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/cipherlab/cipherlab-go/trace"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestEncryptKnownAnswers(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		plaintext  string
		ciphertext string
	}{
		{
			// FIPS-197 Appendix B worked example.
			name:       "fips-197 appendix B",
			key:        "2b7e151628aed2a6abf7158809cf4f3c",
			plaintext:  "3243f6a8885a308d313198a2e0370734",
			ciphertext: "3925841d02dc09fbdc118597196a0b32",
		},
		{
			// NIST SP 800-38A F.1.1 ECB-AES128, block 1.
			name:       "sp 800-38a ecb block 1",
			key:        "2b7e151628aed2a6abf7158809cf4f3c",
			plaintext:  "6bc1bee22e409f96e93d7e117393172a",
			ciphertext: "3ad77bb40d7a3660a89ecaf32466ef97",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher(mustHex(t, tt.key))
			if err != nil {
				t.Fatalf("NewCipher() error = %v", err)
			}

			got := make([]byte, BlockSize)
			c.Encrypt(got, mustHex(t, tt.plaintext))
			if want := mustHex(t, tt.ciphertext); !bytes.Equal(got, want) {
				t.Errorf("Encrypt() = %x, want %x", got, want)
			}

			back := make([]byte, BlockSize)
			c.Decrypt(back, got)
			if want := mustHex(t, tt.plaintext); !bytes.Equal(back, want) {
				t.Errorf("Decrypt() = %x, want %x", back, want)
			}
		})
	}
}

func TestKeyExpansion(t *testing.T) {
	// Schedule words from FIPS-197 Appendix A.1.
	c, err := NewCipher(mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	words := map[int]uint32{
		0:  0x2b7e1516,
		4:  0xa0fafe17,
		5:  0x88542cb1,
		6:  0x23a33939,
		7:  0x2a6c7605,
		8:  0xf2c295f2,
		9:  0x7a96b943,
		10: 0x5935807a,
		11: 0x7359f67f,
		40: 0xd014f9a8,
		41: 0xc9ee2589,
		42: 0xe13f0cc8,
		43: 0xb6630ca6,
	}
	for i, want := range words {
		if got := c.rk[i]; got != want {
			t.Errorf("round key word %d = %08x, want %08x", i, got, want)
		}
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	// Deterministic byte patterns stand in for random inputs.
	for i := 0; i < 32; i++ {
		key := make([]byte, KeySize)
		pt := make([]byte, BlockSize)
		for j := range key {
			key[j] = byte(i*31 + j*7)
			pt[j] = byte(i*13 + j*11 + 5)
		}

		ours, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher() error = %v", err)
		}
		theirs, err := stdaes.NewCipher(key)
		if err != nil {
			t.Fatalf("crypto/aes NewCipher() error = %v", err)
		}

		got := make([]byte, BlockSize)
		want := make([]byte, BlockSize)
		ours.Encrypt(got, pt)
		theirs.Encrypt(want, pt)
		if !bytes.Equal(got, want) {
			t.Fatalf("key %x pt %x: Encrypt() = %x, crypto/aes = %x", key, pt, got, want)
		}

		back := make([]byte, BlockSize)
		ours.Decrypt(back, got)
		if !bytes.Equal(back, pt) {
			t.Fatalf("key %x: Decrypt(Encrypt(pt)) = %x, want %x", key, back, pt)
		}
	}
}

func TestNewCipherKeySize(t *testing.T) {
	for _, n := range []int{0, 10, 15, 17, 24, 32} {
		if _, err := NewCipher(make([]byte, n)); err == nil {
			t.Errorf("NewCipher with %d-byte key succeeded, want error", n)
		} else {
			var kse KeySizeError
			if !errors.As(err, &kse) {
				t.Errorf("NewCipher with %d-byte key returned %T, want KeySizeError", n, err)
			}
		}
	}
}

func TestEncryptInPlace(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	buf := mustHex(t, "3243f6a8885a308d313198a2e0370734")
	c.Encrypt(buf, buf)
	if want := mustHex(t, "3925841d02dc09fbdc118597196a0b32"); !bytes.Equal(buf, want) {
		t.Errorf("in-place Encrypt() = %x, want %x", buf, want)
	}
}

func TestEncryptPanicsOnShortBlock(t *testing.T) {
	c, err := NewCipher(make([]byte, KeySize))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Encrypt with short src did not panic")
		}
	}()
	c.Encrypt(make([]byte, BlockSize), make([]byte, BlockSize-1))
}

func TestTrace(t *testing.T) {
	var events []trace.Event
	c, err := NewCipher(mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"),
		WithTrace(func(e trace.Event) { events = append(events, e) }))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	ct := make([]byte, BlockSize)
	c.Encrypt(ct, mustHex(t, "3243f6a8885a308d313198a2e0370734"))

	// Initial whitening plus ten rounds.
	if len(events) != rounds+1 {
		t.Fatalf("encrypt emitted %d events, want %d", len(events), rounds+1)
	}
	for i, e := range events {
		if e.Algorithm != "aes-128" {
			t.Errorf("event %d algorithm = %q, want aes-128", i, e.Algorithm)
		}
		if e.Op != trace.OpEncrypt {
			t.Errorf("event %d op = %q, want %q", i, e.Op, trace.OpEncrypt)
		}
		if e.Round != i {
			t.Errorf("event %d round = %d, want %d", i, e.Round, i)
		}
		if len(e.State) != BlockSize {
			t.Errorf("event %d state length = %d, want %d", i, len(e.State), BlockSize)
		}
	}
	// The last event is the ciphertext itself.
	if !bytes.Equal(events[len(events)-1].State, ct) {
		t.Errorf("final trace state = %x, want ciphertext %x", events[len(events)-1].State, ct)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	c, err := NewCipher(make([]byte, KeySize))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encrypt(buf, buf)
	}
}
