package cli

import (
	"encoding/hex"
	"fmt"

	cipherlab "github.com/cipherlab/cipherlab-go"
	"github.com/spf13/cobra"
)

// encryptCmd encrypts stdin or a file with one of the block ciphers.
var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a message with one of the block ciphers",
	Long: `Encrypt reads a plaintext message, encrypts it with the chosen
algorithm and mode, and prints the ciphertext hex-encoded (or base64
with --base64).

In ECB mode the message is padded to the block size first. In CTR mode
the ciphertext starts with the nonce, so decrypt needs no --nonce flag.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cipherFromFlags(cmd)
		if err != nil {
			return err
		}

		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		useB64, _ := cmd.Flags().GetBool("base64")

		msg, err := readInput(in)
		if err != nil {
			return err
		}
		ct, err := c.Encrypt(msg)
		if err != nil {
			return err
		}
		return writeOutput(out, []byte(encodeBytes(ct, useB64)+"\n"))
	},
}

// decryptCmd reverses encrypt.
var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a message produced by encrypt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cipherFromFlags(cmd)
		if err != nil {
			return err
		}

		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		useB64, _ := cmd.Flags().GetBool("base64")

		data, err := readInput(in)
		if err != nil {
			return err
		}
		ct, err := decodeBytes(string(data), useB64)
		if err != nil {
			return fmt.Errorf("parse ciphertext: %w", err)
		}
		pt, err := c.Decrypt(ct)
		if err != nil {
			return err
		}
		return writeOutput(out, pt)
	},
}

// cipherFromFlags builds a Cipher from the flags shared by encrypt and
// decrypt.
func cipherFromFlags(cmd *cobra.Command) (*cipherlab.Cipher, error) {
	alg, _ := cmd.Flags().GetString("alg")
	keyHex, _ := cmd.Flags().GetString("key")
	passphrase, _ := cmd.Flags().GetString("passphrase")
	mode, _ := cmd.Flags().GetString("mode")
	nonceHex, _ := cmd.Flags().GetString("nonce")

	key, err := resolveKey(keyHex, passphrase, 16)
	if err != nil {
		return nil, err
	}

	opts := []cipherlab.Option{cipherlab.WithMode(cipherlab.Mode(mode))}
	if nonceHex != "" {
		nonce, err := hex.DecodeString(nonceHex)
		if err != nil {
			return nil, fmt.Errorf("parse --nonce: %w", err)
		}
		opts = append(opts, cipherlab.WithNonce(nonce))
	}

	return cipherlab.New(cipherlab.Algorithm(alg), key, opts...)
}

func init() {
	for _, cmd := range []*cobra.Command{encryptCmd, decryptCmd} {
		cmd.Flags().String("alg", "aes128", "algorithm: aes128, twofish, serpent, rc6 or mars")
		cmd.Flags().String("key", "", "key as hex")
		cmd.Flags().String("passphrase", "", "derive the key from a passphrase instead of --key")
		cmd.Flags().String("mode", "ecb", "mode of operation: ecb or ctr")
		cmd.Flags().String("nonce", "", "CTR nonce as hex, 8 bytes; random when omitted")
		cmd.Flags().String("in", "-", "input file, - for stdin")
		cmd.Flags().String("out", "-", "output file, - for stdout")
		cmd.Flags().Bool("base64", false, "use base64 instead of hex for the ciphertext")
	}
}
