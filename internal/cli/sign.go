package cli

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/cipherlab/cipherlab-go/schnorr"
	"github.com/spf13/cobra"
)

// signCmd signs a message with a Schnorr key over secp256k1.
var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a message with a Schnorr key over secp256k1",
	Long: `Sign reads a message and prints its Schnorr signature. Pass the
private scalar as 32 bytes of hex with --key, or omit it to mint a
fresh key pair; a minted private key is printed first so it can be
reused.

Public keys are X||Y (64 bytes hex), signatures RX||RY||S (96 bytes).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyHex, _ := cmd.Flags().GetString("key")
		in, _ := cmd.Flags().GetString("in")

		msg, err := readInput(in)
		if err != nil {
			return err
		}

		var priv *schnorr.PrivateKey
		if keyHex == "" {
			priv, err = schnorr.GenerateKey(nil)
			if err != nil {
				return err
			}
			var d [32]byte
			priv.D.FillBytes(d[:])
			fmt.Printf("private   %x\n", d)
		} else {
			raw, err := hex.DecodeString(keyHex)
			if err != nil {
				return fmt.Errorf("parse --key: %w", err)
			}
			priv, err = schnorr.NewPrivateKey(new(big.Int).SetBytes(raw))
			if err != nil {
				return err
			}
		}

		sig, err := schnorr.Sign(nil, priv, msg)
		if err != nil {
			return err
		}

		fmt.Printf("public    %s\n", encodePublicKey(&priv.PublicKey))
		fmt.Printf("signature %s\n", encodeSignature(sig))
		return nil
	},
}

// verifyCmd checks a signature produced by sign.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a Schnorr signature",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pubHex, _ := cmd.Flags().GetString("pub")
		sigHex, _ := cmd.Flags().GetString("sig")
		in, _ := cmd.Flags().GetString("in")

		pub, err := decodePublicKey(pubHex)
		if err != nil {
			return err
		}
		sig, err := decodeSignature(sigHex)
		if err != nil {
			return err
		}
		msg, err := readInput(in)
		if err != nil {
			return err
		}

		if !schnorr.Verify(pub, msg, sig) {
			return fmt.Errorf("signature invalid")
		}
		fmt.Println("signature valid")
		return nil
	},
}

// encodePublicKey packs a public key as X || Y, 32 bytes each.
func encodePublicKey(pub *schnorr.PublicKey) string {
	buf := make([]byte, 64)
	pub.X.FillBytes(buf[:32])
	pub.Y.FillBytes(buf[32:])
	return hex.EncodeToString(buf)
}

func decodePublicKey(s string) (*schnorr.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse --pub: %w", err)
	}
	if len(raw) != 64 {
		return nil, fmt.Errorf("public key must be 64 bytes, got %d", len(raw))
	}
	return &schnorr.PublicKey{
		X: new(big.Int).SetBytes(raw[:32]),
		Y: new(big.Int).SetBytes(raw[32:]),
	}, nil
}

// encodeSignature packs a signature as RX || RY || S, 32 bytes each.
func encodeSignature(sig *schnorr.Signature) string {
	buf := make([]byte, 96)
	sig.RX.FillBytes(buf[:32])
	sig.RY.FillBytes(buf[32:64])
	sig.S.FillBytes(buf[64:])
	return hex.EncodeToString(buf)
}

func decodeSignature(s string) (*schnorr.Signature, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse --sig: %w", err)
	}
	if len(raw) != 96 {
		return nil, fmt.Errorf("signature must be 96 bytes, got %d", len(raw))
	}
	return &schnorr.Signature{
		RX: new(big.Int).SetBytes(raw[:32]),
		RY: new(big.Int).SetBytes(raw[32:64]),
		S:  new(big.Int).SetBytes(raw[64:]),
	}, nil
}

func init() {
	signCmd.Flags().String("key", "", "private scalar as 32 bytes of hex; fresh key when omitted")
	signCmd.Flags().String("in", "-", "message file, - for stdin")

	verifyCmd.Flags().String("pub", "", "public key as X||Y hex")
	verifyCmd.Flags().String("sig", "", "signature as RX||RY||S hex")
	verifyCmd.Flags().String("in", "-", "message file, - for stdin")
}
