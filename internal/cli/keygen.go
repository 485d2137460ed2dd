package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	cipherlab "github.com/cipherlab/cipherlab-go"
	"github.com/spf13/cobra"
)

// keygenCmd draws a fresh random key and prints it hex-encoded.
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a random key for an algorithm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, _ := cmd.Flags().GetString("alg")
		size, _ := cmd.Flags().GetInt("size")

		if size <= 0 {
			return fmt.Errorf("--size must be positive, got %d", size)
		}
		key := make([]byte, size)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("draw key: %w", err)
		}
		// Reject sizes the algorithm cannot use before handing the
		// key out.
		if _, err := cipherlab.Block(cipherlab.Algorithm(alg), key); err != nil {
			return err
		}

		fmt.Println(hex.EncodeToString(key))
		return nil
	},
}

func init() {
	keygenCmd.Flags().String("alg", "aes128", "algorithm the key is for")
	keygenCmd.Flags().Int("size", 16, "key size in bytes")
}
