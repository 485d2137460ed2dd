package cipherlab

import (
	"encoding/hex"
	"fmt"
)

func ExampleNew() {
	c, err := New(AES128, []byte("Th1s1sA128bitKey"))
	if err != nil {
		panic(err)
	}

	ct, err := c.Encrypt([]byte("Example message that needs to be encrypted."))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%x\n", ct)
	// Output: 099c8be4e416f5687c2ebf56e8e8db4fc27f74c991472baf7dafec1a29bdde434831ff36825034c708ccf03099482152
}

func ExampleNew_ctr() {
	// A fixed nonce makes the output reproducible; omit WithNonce to
	// draw a fresh random nonce per message.
	c, err := New(AES128, []byte("Th1s1sA128bitKey"),
		WithMode(ModeCTR),
		WithNonce([]byte("NONCE123")),
	)
	if err != nil {
		panic(err)
	}

	ct, err := c.Encrypt([]byte("Example message that needs to be encrypted."))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%x\n", ct)
	// Output: 4e4f4e43453132332fea47642b29bdc785ea23a304276bed0136046916a6ca52aa1eebe03f7203f9ba1892b7c4bbc934aa9155
}

func ExampleCipher_Decrypt() {
	ct, err := hex.DecodeString(
		"099c8be4e416f5687c2ebf56e8e8db4fc27f74c991472baf7dafec1a29bdde434831ff36825034c708ccf03099482152")
	if err != nil {
		panic(err)
	}

	c, err := New(AES128, []byte("Th1s1sA128bitKey"))
	if err != nil {
		panic(err)
	}

	pt, err := c.Decrypt(ct)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s\n", pt)
	// Output: Example message that needs to be encrypted.
}

func ExampleKeyFromPassphrase() {
	key, err := KeyFromPassphrase("correct horse battery staple", 16)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%x\n", key)
	// Output: aadfd578e8c6e0a8e15783922721fc4e
}
