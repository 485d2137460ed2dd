// Package blockmode implements modes of operation over any
// crypto/cipher.Block: ECB for showing why block ciphers need modes,
// and CTR for turning one into a stream cipher.
//
// Both modes follow the stdlib contracts: ECB is a cipher.BlockMode
// that panics on partial blocks, CTR is a cipher.Stream that accepts
// any input length and keeps its keystream position across calls.
package blockmode

import "crypto/cipher"

type ecb struct {
	b         cipher.Block
	blockSize int
}

type ecbEncrypter ecb

// NewECBEncrypter returns a BlockMode which encrypts each block of src
// independently with b. Identical plaintext blocks produce identical
// ciphertext blocks; that leakage is the point of demonstrating ECB.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecbEncrypter{b: b, blockSize: b.BlockSize()}
}

// BlockSize returns the underlying cipher's block size.
func (x *ecbEncrypter) BlockSize() int { return x.blockSize }

// CryptBlocks encrypts full blocks from src into dst. It panics when
// src is not a whole number of blocks or dst is shorter than src.
func (x *ecbEncrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("blockmode: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("blockmode: output smaller than input")
	}
	for len(src) > 0 {
		x.b.Encrypt(dst[:x.blockSize], src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

type ecbDecrypter ecb

// NewECBDecrypter returns a BlockMode which decrypts each block of src
// independently with b.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecbDecrypter{b: b, blockSize: b.BlockSize()}
}

// BlockSize returns the underlying cipher's block size.
func (x *ecbDecrypter) BlockSize() int { return x.blockSize }

// CryptBlocks decrypts full blocks from src into dst. Panics mirror
// the encrypter.
func (x *ecbDecrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("blockmode: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("blockmode: output smaller than input")
	}
	for len(src) > 0 {
		x.b.Decrypt(dst[:x.blockSize], src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}
