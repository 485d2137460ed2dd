package padding

import (
	"bytes"
	"errors"
	"testing"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		blockSize int
		want      []byte
	}{
		{
			name:      "one short of a block",
			input:     []byte("123456789012345"),
			blockSize: 16,
			want:      append([]byte("123456789012345"), 0x01),
		},
		{
			name:      "five bytes of padding",
			input:     []byte("hello world"),
			blockSize: 16,
			want:      append([]byte("hello world"), 5, 5, 5, 5, 5),
		},
		{
			name:      "aligned input grows by a full block",
			input:     []byte("exactly 16 bytes"),
			blockSize: 16,
			want:      append([]byte("exactly 16 bytes"), bytes.Repeat([]byte{16}, 16)...),
		},
		{
			name:      "empty input becomes one block",
			input:     nil,
			blockSize: 8,
			want:      bytes.Repeat([]byte{8}, 8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pad(tt.input, tt.blockSize)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pad() = %x, want %x", got, tt.want)
			}
			if len(got)%tt.blockSize != 0 {
				t.Errorf("Pad() length %d is not a multiple of %d", len(got), tt.blockSize)
			}
		})
	}
}

func TestUnpad(t *testing.T) {
	msg := []byte("Example message that needs to be encrypted.")
	padded := Pad(msg, 16)
	got, err := Unpad(padded, 16)
	if err != nil {
		t.Fatalf("Unpad() error = %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("Unpad(Pad(msg)) = %q, want %q", got, msg)
	}
}

func TestUnpadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty input", nil},
		{"not a block multiple", []byte("12345")},
		{"zero pad length", append(bytes.Repeat([]byte{'a'}, 15), 0)},
		{"pad length over block size", append(bytes.Repeat([]byte{'a'}, 15), 17)},
		{"inconsistent pad bytes", append(bytes.Repeat([]byte{'a'}, 13), 2, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unpad(tt.input, 16); !errors.Is(err, ErrInvalidPadding) {
				t.Errorf("Unpad(%x) error = %v, want ErrInvalidPadding", tt.input, err)
			}
		})
	}
}

func TestUnpadAllLengths(t *testing.T) {
	// Every pad length 1..blockSize must survive a round trip.
	for n := 0; n < 16; n++ {
		input := bytes.Repeat([]byte{0xAA}, n)
		got, err := Unpad(Pad(input, 16), 16)
		if err != nil {
			t.Fatalf("length %d: Unpad() error = %v", n, err)
		}
		if !bytes.Equal(got, input) {
			t.Fatalf("length %d: round trip = %x, want %x", n, got, input)
		}
	}
}

func TestPadInvalidBlockSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pad with block size 0 did not panic")
		}
	}()
	Pad([]byte("x"), 0)
}
