package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cipherlab/cipherlab-go/hashes"
	"github.com/spf13/cobra"
)

// hashCmd digests a file or stdin with one of the from-scratch hashes.
var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Hash a file or stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, _ := cmd.Flags().GetString("alg")
		in, _ := cmd.Flags().GetString("in")

		h, err := hashes.New(alg)
		if err != nil {
			return fmt.Errorf("%w (have %s)", err, strings.Join(hashes.Names(), ", "))
		}

		r, closeInput, err := openInput(in)
		if err != nil {
			return err
		}
		defer closeInput()

		if _, err := io.Copy(h, r); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		fmt.Printf("%x\n", h.Sum(nil))
		return nil
	},
}

func init() {
	hashCmd.Flags().String("alg", "sha256", "hash algorithm: md5, sha1 or sha256")
	hashCmd.Flags().String("in", "-", "input file, - for stdin")
}
