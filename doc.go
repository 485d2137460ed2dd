// Package cipherlab implements classic block ciphers from scratch for
// study: AES-128 plus simplified Twofish, Serpent, RC6 and MARS
// variants, with ECB and CTR modes, PKCS#7 padding and per-round
// tracing.
//
// Nothing here is hardened: no constant-time guarantees, no side
// channel resistance, no key management. Use crypto/aes and friends for
// real data; use this module to watch how the algorithms work.
//
// Basic usage:
//
//	key := []byte("Th1s1sA128bitKey")
//	c, err := cipherlab.New(cipherlab.AES128, key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ct, err := c.Encrypt([]byte("Example message that needs to be encrypted."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pt, err := c.Decrypt(ct)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s\n", pt)
//
// Subpackages round the collection out: hashes (MD5, SHA-1, SHA-256),
// rc4 (width-parameterized RC4), shamir (secret sharing), schnorr
// (signatures over secp256k1), fiatshamir (zero-knowledge
// identification), ecdh (X25519) and analysis (index of coincidence,
// Kasiski examination).
package cipherlab
