package cipherlab

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cipherlab/cipherlab-go/aes"
	"github.com/cipherlab/cipherlab-go/blockmode"
	"github.com/cipherlab/cipherlab-go/mars"
	"github.com/cipherlab/cipherlab-go/padding"
	"github.com/cipherlab/cipherlab-go/rc6"
	"github.com/cipherlab/cipherlab-go/serpent"
	"github.com/cipherlab/cipherlab-go/trace"
	"github.com/cipherlab/cipherlab-go/twofish"
)

// Algorithm identifies one of the block ciphers in this module.
type Algorithm string

const (
	// AES128 is AES with a 16-byte key (FIPS 197 semantics).
	AES128 Algorithm = "aes128"
	// Twofish is the simplified Twofish variant; 16-, 24- or 32-byte keys.
	Twofish Algorithm = "twofish"
	// Serpent is the simplified Serpent variant; 16-, 24- or 32-byte keys.
	Serpent Algorithm = "serpent"
	// RC6 is RC6-32/20 with a 16-byte key.
	RC6 Algorithm = "rc6"
	// MARS is a toy MARS-like Feistel cipher with a 16-byte key. Its weak
	// diffusion is deliberate; see package mars.
	MARS Algorithm = "mars"
)

// Algorithms lists every supported algorithm in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AES128, Twofish, Serpent, RC6, MARS}
}

// counterLen is the number of trailing counter bytes in a CTR block.
// The leading BlockSize-counterLen bytes hold the message nonce.
const counterLen = 8

// Block constructs the raw block cipher for alg. Most callers want New,
// which pairs the engine with a mode of operation.
func Block(alg Algorithm, key []byte) (cipher.Block, error) {
	return newBlock(alg, key, nil)
}

func newBlock(alg Algorithm, key []byte, fn trace.Func) (cipher.Block, error) {
	var (
		b   cipher.Block
		err error
	)
	switch alg {
	case AES128:
		b, err = aes.NewCipher(key, aes.WithTrace(fn))
	case Twofish:
		b, err = twofish.NewCipher(key, twofish.WithTrace(fn))
	case Serpent:
		b, err = serpent.NewCipher(key, serpent.WithTrace(fn))
	case RC6:
		b, err = rc6.NewCipher(key, rc6.WithTrace(fn))
	case MARS:
		b, err = mars.NewCipher(key, mars.WithTrace(fn))
	default:
		return nil, &AlgorithmError{Algorithm: alg}
	}
	if err != nil {
		// Engine constructors fail only on key length.
		return nil, &KeySizeError{Algorithm: alg, Size: len(key), Err: err}
	}
	return b, nil
}

// Cipher pairs a block cipher engine with a mode of operation and
// provides whole-message Encrypt and Decrypt.
//
// A Cipher is safe for concurrent use: the engine is immutable after
// construction and each call builds its own mode state.
type Cipher struct {
	alg   Algorithm
	block cipher.Block
	cfg   cipherConfig
}

// New builds a Cipher for the given algorithm and key.
func New(alg Algorithm, key []byte, opts ...Option) (*Cipher, error) {
	cfg := cipherConfig{mode: ModeECB}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rand == nil {
		cfg.rand = rand.Reader
	}
	switch cfg.mode {
	case ModeECB, ModeCTR:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, string(cfg.mode))
	}

	block, err := newBlock(alg, key, cfg.trace)
	if err != nil {
		return nil, err
	}
	if cfg.nonce != nil {
		if want := block.BlockSize() - counterLen; len(cfg.nonce) != want {
			return nil, &NonceSizeError{Size: len(cfg.nonce), Want: want}
		}
		cfg.nonce = append([]byte(nil), cfg.nonce...)
	}
	return &Cipher{alg: alg, block: block, cfg: cfg}, nil
}

// Algorithm returns the algorithm this Cipher was built with.
func (c *Cipher) Algorithm() Algorithm { return c.alg }

// Mode returns the mode of operation.
func (c *Cipher) Mode() Mode { return c.cfg.mode }

// BlockSize returns the engine's block size in bytes.
func (c *Cipher) BlockSize() int { return c.block.BlockSize() }

// Encrypt encrypts a message of any length. In ECB mode the message is
// PKCS#7 padded, so the ciphertext is always at least one block. In CTR
// mode the ciphertext is nonce || stream with no padding.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	if c.cfg.mode == ModeCTR {
		return c.encryptCTR(plaintext)
	}
	return c.encryptECB(plaintext), nil
}

// Decrypt inverts Encrypt. ECB mode checks the block alignment and
// strips the padding; CTR mode reads the nonce off the front.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if c.cfg.mode == ModeCTR {
		return c.decryptCTR(ciphertext)
	}
	return c.decryptECB(ciphertext)
}

func (c *Cipher) encryptECB(plaintext []byte) []byte {
	padded := padding.Pad(plaintext, c.block.BlockSize())
	out := make([]byte, len(padded))
	blockmode.NewECBEncrypter(c.block).CryptBlocks(out, padded)
	return out
}

func (c *Cipher) decryptECB(ciphertext []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: len %d", ErrInputSize, len(ciphertext))
	}
	buf := make([]byte, len(ciphertext))
	blockmode.NewECBDecrypter(c.block).CryptBlocks(buf, ciphertext)
	return padding.Unpad(buf, bs)
}

func (c *Cipher) encryptCTR(plaintext []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	nonce := c.cfg.nonce
	if nonce == nil {
		nonce = make([]byte, bs-counterLen)
		if _, err := io.ReadFull(c.cfg.rand, nonce); err != nil {
			return nil, fmt.Errorf("draw nonce: %w", err)
		}
	}
	iv := make([]byte, bs)
	copy(iv, nonce)

	out := make([]byte, len(nonce)+len(plaintext))
	copy(out, nonce)
	blockmode.NewCTR(c.block, iv).XORKeyStream(out[len(nonce):], plaintext)
	return out, nil
}

func (c *Cipher) decryptCTR(ciphertext []byte) ([]byte, error) {
	bs := c.block.BlockSize()
	nonceLen := bs - counterLen
	if len(ciphertext) < nonceLen {
		return nil, fmt.Errorf("%w: len %d", ErrCiphertextShort, len(ciphertext))
	}
	iv := make([]byte, bs)
	copy(iv, ciphertext[:nonceLen])

	out := make([]byte, len(ciphertext)-nonceLen)
	blockmode.NewCTR(c.block, iv).XORKeyStream(out, ciphertext[nonceLen:])
	return out, nil
}
