package rc4

import (
	"bytes"
	stdrc4 "crypto/rc4"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/cipherlab/cipherlab-go/trace"
)

func TestClassicVectors(t *testing.T) {
	// The well-known byte-wide RC4 vectors.
	tests := []struct {
		key string
		pt  string
		ct  string
	}{
		{"Key", "Plaintext", "bbf316e8d940af0ad3"},
		{"Wiki", "pedia", "1021bf0420"},
		{"Secret", "Attack at dawn", "45a01f645fc35b383552544b9bf5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := NewCipher([]byte(tt.key))
			if err != nil {
				t.Fatalf("NewCipher() error = %v", err)
			}
			want, err := hex.DecodeString(tt.ct)
			if err != nil {
				t.Fatal(err)
			}

			ct := make([]byte, len(tt.pt))
			c.XORKeyStream(ct, []byte(tt.pt))
			if !bytes.Equal(ct, want) {
				t.Errorf("XORKeyStream = %x, want %x", ct, want)
			}

			// Rewinding and applying the stream again decrypts.
			c.Reset()
			pt := make([]byte, len(ct))
			c.XORKeyStream(pt, ct)
			if string(pt) != tt.pt {
				t.Errorf("decrypt = %q, want %q", pt, tt.pt)
			}
		})
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	keys := [][]byte{
		[]byte("k"),
		[]byte("pair"),
		[]byte("a longer key with spaces"),
		bytes.Repeat([]byte{0xaa, 0x55}, 16),
	}
	for _, key := range keys {
		c, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher(%q) error = %v", key, err)
		}
		std, err := stdrc4.NewCipher(key)
		if err != nil {
			t.Fatalf("crypto/rc4.NewCipher(%q) error = %v", key, err)
		}

		src := make([]byte, 512)
		for i := range src {
			src[i] = byte(i * 13)
		}
		got := make([]byte, len(src))
		want := make([]byte, len(src))
		c.XORKeyStream(got, src)
		std.XORKeyStream(want, src)
		if !bytes.Equal(got, want) {
			t.Errorf("key %q: keystream diverges from crypto/rc4", key)
		}
	}
}

func TestNarrowWidth(t *testing.T) {
	// 3-bit words: state is a permutation of 0..7, small enough to
	// check the schedule by hand.
	c, err := NewCipherWidth(3, []byte{1, 2, 3, 6})
	if err != nil {
		t.Fatalf("NewCipherWidth() error = %v", err)
	}
	if c.Width() != 3 {
		t.Errorf("Width() = %d, want 3", c.Width())
	}

	wantPerm := []byte{2, 3, 7, 4, 6, 0, 1, 5}
	if !bytes.Equal(c.s, wantPerm) {
		t.Errorf("scheduled state = %v, want %v", c.s, wantPerm)
	}

	src := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	want := []byte{5, 0, 2, 2, 4, 0, 5, 7}
	dst := make([]byte, len(src))
	c.XORKeyStream(dst, src)
	if !bytes.Equal(dst, want) {
		t.Errorf("3-bit XORKeyStream = %v, want %v", dst, want)
	}

	c.Reset()
	back := make([]byte, len(dst))
	c.XORKeyStream(back, dst)
	if !bytes.Equal(back, src) {
		t.Errorf("3-bit decrypt = %v, want %v", back, src)
	}
}

func TestWidthOne(t *testing.T) {
	// The 1-bit cipher has a two-entry state. Degenerate but legal.
	c, err := NewCipherWidth(1, []byte{1})
	if err != nil {
		t.Fatalf("NewCipherWidth(1) error = %v", err)
	}
	want := []byte{0, 0, 1, 1, 1, 0, 0, 0}
	got := make([]byte, len(want))
	c.XORKeyStream(got, make([]byte, len(want)))
	if !bytes.Equal(got, want) {
		t.Errorf("1-bit keystream = %v, want %v", got, want)
	}
}

func TestChunkedCallsMatchSingleCall(t *testing.T) {
	key := []byte("Secret")
	msg := []byte("stream ciphers keep their position between calls")

	whole, err := NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]byte, len(msg))
	whole.XORKeyStream(want, msg)

	chunked, err := NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(msg))
	bounds := []int{0, 1, 5, 17, 30, len(msg)}
	for i := 1; i < len(bounds); i++ {
		chunked.XORKeyStream(got[bounds[i-1]:bounds[i]], msg[bounds[i-1]:bounds[i]])
	}
	if !bytes.Equal(got, want) {
		t.Errorf("chunked calls = %x, want %x", got, want)
	}
}

func TestConstructorErrors(t *testing.T) {
	if _, err := NewCipher(nil); err == nil {
		t.Error("NewCipher accepted an empty key")
	} else if _, ok := err.(KeySizeError); !ok {
		t.Errorf("empty key error type = %T, want KeySizeError", err)
	}

	for _, w := range []int{0, -1, 9, 16} {
		if _, err := NewCipherWidth(w, []byte{1}); err == nil {
			t.Errorf("NewCipherWidth accepted width %d", w)
		} else if _, ok := err.(WordSizeError); !ok {
			t.Errorf("width %d error type = %T, want WordSizeError", w, err)
		}
	}

	// Key symbol 8 does not fit 3-bit words.
	_, err := NewCipherWidth(3, []byte{1, 8})
	if !errors.Is(err, ErrSymbolRange) {
		t.Errorf("oversized symbol error = %v, want ErrSymbolRange", err)
	}
}

func TestTrace(t *testing.T) {
	var events []trace.Event
	c, err := NewCipherWidth(3, []byte{1, 2, 3, 6}, WithTrace(func(ev trace.Event) {
		events = append(events, ev)
	}))
	if err != nil {
		t.Fatalf("NewCipherWidth() error = %v", err)
	}

	c.XORKeyStream(make([]byte, 4), make([]byte, 4))

	// One schedule event plus one per symbol.
	if len(events) != 5 {
		t.Fatalf("got %d trace events, want 5", len(events))
	}
	if events[0].Op != trace.OpKeySchedule {
		t.Errorf("first event op = %s, want %s", events[0].Op, trace.OpKeySchedule)
	}
	if !bytes.Equal(events[0].State, []byte{2, 3, 7, 4, 6, 0, 1, 5}) {
		t.Errorf("schedule state = %v", events[0].State)
	}
	wantStream := []byte{5, 1, 0, 1}
	for i, ev := range events[1:] {
		if ev.Op != trace.OpEncrypt || ev.Round != i {
			t.Errorf("event %d = {%s %d}", i, ev.Op, ev.Round)
		}
		if len(ev.State) != 1 || ev.State[0] != wantStream[i] {
			t.Errorf("event %d symbol = %v, want %d", i, ev.State, wantStream[i])
		}
	}
}

func BenchmarkXORKeyStream(b *testing.B) {
	c, err := NewCipher([]byte("Secret"))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 1024)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		c.XORKeyStream(buf, buf)
	}
}
