package cipherlab

import (
	"bytes"
	"testing"

	"github.com/cipherlab/cipherlab-go/trace"
)

func TestMode_Constants(t *testing.T) {
	if ModeECB != "ecb" {
		t.Errorf("ModeECB = %s, want ecb", ModeECB)
	}
	if ModeCTR != "ctr" {
		t.Errorf("ModeCTR = %s, want ctr", ModeCTR)
	}
}

func TestAlgorithm_Constants(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		name string
	}{
		{AES128, "aes128"},
		{Twofish, "twofish"},
		{Serpent, "serpent"},
		{RC6, "rc6"},
		{MARS, "mars"},
	}

	for _, tt := range tests {
		if string(tt.alg) != tt.name {
			t.Errorf("Algorithm constant = %s, want %s", tt.alg, tt.name)
		}
	}
}

func TestWithMode(t *testing.T) {
	cfg := &cipherConfig{}
	WithMode(ModeCTR)(cfg)
	if cfg.mode != ModeCTR {
		t.Errorf("mode = %s, want %s", cfg.mode, ModeCTR)
	}
}

func TestWithNonce(t *testing.T) {
	cfg := &cipherConfig{}
	nonce := []byte("NONCE123")
	WithNonce(nonce)(cfg)
	if !bytes.Equal(cfg.nonce, nonce) {
		t.Errorf("nonce = %x, want %x", cfg.nonce, nonce)
	}
}

func TestWithTrace(t *testing.T) {
	cfg := &cipherConfig{}
	WithTrace(func(trace.Event) {})(cfg)
	if cfg.trace == nil {
		t.Error("trace callback was not set")
	}
}

func TestWithRand(t *testing.T) {
	cfg := &cipherConfig{}
	r := bytes.NewReader([]byte("not random at all"))
	WithRand(r)(cfg)
	if cfg.rand != r {
		t.Error("rand source was not set")
	}
}

// New copies an explicit nonce, so mutating the caller's slice after
// construction must not change what Encrypt uses.
func TestNew_CopiesNonce(t *testing.T) {
	nonce := []byte("NONCE123")
	c, err := New(AES128, demoKey, WithMode(ModeCTR), WithNonce(nonce))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	nonce[0] = 'X'

	ct, err := c.Encrypt([]byte("m"))
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if !bytes.Equal(ct[:8], []byte("NONCE123")) {
		t.Errorf("nonce in ciphertext = %q, want NONCE123", ct[:8])
	}
}
