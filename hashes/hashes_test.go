package hashes

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
	"strings"
	"testing"
)

func TestMD5Vectors(t *testing.T) {
	// RFC 1321 appendix A.5.
	tests := []struct {
		in   string
		want string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"a", "0cc175b9c0f1b6a831c399e269772661"},
		{"abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
		{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
			"d174ab98d277d9f5a5611c2c9f419d9f"},
		{strings.Repeat("1234567890", 8), "57edf4a22be3c955ac49da2e2107b67a"},
	}
	for _, tt := range tests {
		sum := SumMD5([]byte(tt.in))
		if got := hex.EncodeToString(sum[:]); got != tt.want {
			t.Errorf("SumMD5(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSHA1Vectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
	}
	for _, tt := range tests {
		sum := SumSHA1([]byte(tt.in))
		if got := hex.EncodeToString(sum[:]); got != tt.want {
			t.Errorf("SumSHA1(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSHA256Vectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	}
	for _, tt := range tests {
		sum := SumSHA256([]byte(tt.in))
		if got := hex.EncodeToString(sum[:]); got != tt.want {
			t.Errorf("SumSHA256(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMillionA(t *testing.T) {
	// FIPS 180 long-message vector: one million 'a' bytes.
	million := bytes.Repeat([]byte{'a'}, 1000000)
	tests := []struct {
		name string
		want string
	}{
		{"md5", "7707d6ae4e027c70eea2a935c2296f21"},
		{"sha1", "34aa973cd4c4daa4f61eeb2bdbad27316534016f"},
		{"sha256", "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := New(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			h.Write(million)
			if got := hex.EncodeToString(h.Sum(nil)); got != tt.want {
				t.Errorf("digest = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	pairs := []struct {
		name string
		ours func() hash.Hash
		std  func() hash.Hash
	}{
		{"md5", NewMD5, md5.New},
		{"sha1", NewSHA1, sha1.New},
		{"sha256", NewSHA256, sha256.New},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			// Lengths around block boundaries catch padding bugs.
			for _, n := range []int{0, 1, 54, 55, 56, 57, 63, 64, 65, 119, 120, 128, 1000} {
				msg := make([]byte, n)
				for i := range msg {
					msg[i] = byte(i*7 + n)
				}
				ours := p.ours()
				std := p.std()
				ours.Write(msg)
				std.Write(msg)
				if !bytes.Equal(ours.Sum(nil), std.Sum(nil)) {
					t.Errorf("len %d: digest diverges from standard library", n)
				}
			}
		})
	}
}

func TestStreamingWrites(t *testing.T) {
	// Split writes must produce the same digest as one write.
	msg := []byte("incremental hashing should not depend on write boundaries at all")
	for _, name := range Names() {
		whole, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		whole.Write(msg)
		want := whole.Sum(nil)

		split, _ := New(name)
		bounds := []int{0, 3, 17, 40, len(msg)}
		for i := 1; i < len(bounds); i++ {
			split.Write(msg[bounds[i-1]:bounds[i]])
		}
		if got := split.Sum(nil); !bytes.Equal(got, want) {
			t.Errorf("%s: split writes = %x, want %x", name, got, want)
		}
	}
}

func TestSumDoesNotFinalize(t *testing.T) {
	// Sum must leave the hash usable for further writes.
	h := NewSHA256()
	h.Write([]byte("ab"))
	mid := h.Sum(nil)
	h.Write([]byte("c"))
	full := hex.EncodeToString(h.Sum(nil))

	if want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"; full != want {
		t.Errorf("digest after continued write = %s, want %s", full, want)
	}
	partial := SumSHA256([]byte("ab"))
	if !bytes.Equal(mid, partial[:]) {
		t.Errorf("mid digest = %x, want %x", mid, partial)
	}
}

func TestReset(t *testing.T) {
	h := NewMD5()
	h.Write([]byte("garbage state"))
	h.Reset()
	h.Write([]byte("abc"))
	want := SumMD5([]byte("abc"))
	if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
		t.Errorf("after Reset digest = %x, want %x", got, want)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("sha3")
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("New(\"sha3\") error = %v, want ErrUnknownAlgorithm", err)
	}
}

func BenchmarkSHA256(b *testing.B) {
	h := NewSHA256()
	buf := make([]byte, 8192)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		h.Reset()
		h.Write(buf)
		h.Sum(nil)
	}
}
