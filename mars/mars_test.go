package mars

import (
	"bytes"
	"encoding/hex"
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
		name string
		key  string
		pt   string
		ct   string
	}{
		{
			name: "padded short message",
			key:  "Sixteen byte key",
			pt:   "616e61206e6177656c21210505050505",
			ct:   "916a48e26e61776513fe53a005050505",
		},
		{
			name: "zero block",
			key:  "Sixteen byte key",
			pt:   "00000000000000000000000000000000",
			ct:   "6a11a28900000000a57ee59500000000",
		},
		{
			name: "three blocks, block one",
			key:  "0123456789abcdef",
			pt:   "54686520717569636b2062726f776e20",
			ct:   "50c6705971756963c021b5456f776e20",
		},
		{
			name: "three blocks, block two",
			key:  "0123456789abcdef",
			pt:   "666f78206a756d7073206f7665722074",
			ct:   "a6f84e2e6a756d70898d5d9465722074",
		},
		{
			name: "three blocks, block three",
			key:  "0123456789abcdef",
			pt:   "6865206c617a7920646f670505050505",
			ct:   "a7005d53617a79200799d1bc05050505",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher([]byte(tt.key))
			if err != nil {
				t.Fatalf("NewCipher() error = %v", err)
			}
			pt := mustHex(t, tt.pt)
			want := mustHex(t, tt.ct)

			ct := make([]byte, BlockSize)
			c.Encrypt(ct, pt)
			if !bytes.Equal(ct, want) {
				t.Errorf("Encrypt() = %x, want %x", ct, want)
			}

			back := make([]byte, BlockSize)
			c.Decrypt(back, ct)
			if !bytes.Equal(back, pt) {
				t.Errorf("Decrypt() = %x, want %x", back, pt)
			}
		})
	}
}

func TestRoundKeys(t *testing.T) {
	c, err := NewCipher([]byte("Sixteen byte key"))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	want := [rounds]uint32{
		0x9fde0c2d, 0x0e94f635, 0xddf7947e, 0xe6848a8c,
		0x06fd2e8d, 0xfb5c2fd3, 0xb0abb09d, 0x89c4c2e9,
	}
	if c.rk != want {
		t.Errorf("round keys = %08x, want %08x", c.rk, want)
	}
}

// TestHighHalvesLeak pins the deliberate weakness: bytes 4..7 and
// 12..15 of every block come through encryption unchanged.
func TestHighHalvesLeak(t *testing.T) {
	c, err := NewCipher([]byte("Sixteen byte key"))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	pt := []byte("ABCDEFGHIJKLMNOP")
	ct := make([]byte, BlockSize)
	c.Encrypt(ct, pt)

	if !bytes.Equal(ct[4:8], pt[4:8]) {
		t.Errorf("bytes 4..7 = %x, want plaintext %x", ct[4:8], pt[4:8])
	}
	if !bytes.Equal(ct[12:16], pt[12:16]) {
		t.Errorf("bytes 12..15 = %x, want plaintext %x", ct[12:16], pt[12:16])
	}
	if bytes.Equal(ct[:4], pt[:4]) {
		t.Error("bytes 0..3 were not masked")
	}
}

func TestRoundTrip(t *testing.T) {
	c, err := NewCipher([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	block := make([]byte, BlockSize)
	for i := 0; i < 64; i++ {
		for j := range block {
			block[j] = byte(i*31 + j*7)
		}
		ct := make([]byte, BlockSize)
		c.Encrypt(ct, block)
		pt := make([]byte, BlockSize)
		c.Decrypt(pt, ct)
		if !bytes.Equal(pt, block) {
			t.Fatalf("round trip %d: got %x, want %x", i, pt, block)
		}
	}
}

func TestEncryptInPlace(t *testing.T) {
	c, err := NewCipher([]byte("Sixteen byte key"))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	buf := mustHex(t, "616e61206e6177656c21210505050505")
	want := mustHex(t, "916a48e26e61776513fe53a005050505")
	c.Encrypt(buf, buf)
	if !bytes.Equal(buf, want) {
		t.Errorf("in-place Encrypt = %x, want %x", buf, want)
	}
}

func TestNewCipherKeySize(t *testing.T) {
	for _, n := range []int{0, 8, 15, 17, 24, 32} {
		if _, err := NewCipher(make([]byte, n)); err == nil {
			t.Errorf("NewCipher accepted %d-byte key", n)
		} else if _, ok := err.(KeySizeError); !ok {
			t.Errorf("NewCipher(%d) error type = %T, want KeySizeError", n, err)
		}
	}
}

func TestTrace(t *testing.T) {
	var events []trace.Event
	c, err := NewCipher([]byte("Sixteen byte key"), WithTrace(func(ev trace.Event) {
		events = append(events, ev)
	}))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}

	pt := mustHex(t, "616e61206e6177656c21210505050505")
	ct := make([]byte, BlockSize)
	c.Encrypt(ct, pt)

	if len(events) != rounds {
		t.Fatalf("got %d trace events, want %d", len(events), rounds)
	}
	wantStates := []string{
		"6c2121050505050506b1b5066e617765",
		"06b1b5066e617765f83c39ce05050505",
		"f83c39ce05050505f0f671466e617765",
		"f0f671466e6177655ffaa72b05050505",
		"5ffaa72b05050505892738346e617765",
		"892738346e61776532b8d79805050505",
		"32b8d79805050505916a48e26e617765",
		"916a48e26e61776513fe53a005050505",
	}
	for i, ev := range events {
		if ev.Algorithm != "mars" || ev.Op != trace.OpEncrypt || ev.Round != i {
			t.Errorf("event %d = {%s %s %d}, want {mars encrypt %d}",
				i, ev.Algorithm, ev.Op, ev.Round, i)
		}
		if got := hex.EncodeToString(ev.State); got != wantStates[i] {
			t.Errorf("event %d state = %s, want %s", i, got, wantStates[i])
		}
	}
	if !bytes.Equal(events[len(events)-1].State, ct) {
		t.Error("final trace state does not match ciphertext")
	}
}

func BenchmarkEncrypt(b *testing.B) {
	c, err := NewCipher([]byte("Sixteen byte key"))
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	for i := 0; i < b.N; i++ {
		c.Encrypt(buf, buf)
	}
}
