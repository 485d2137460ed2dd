package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cipherlab/cipherlab-go/shamir"
	"github.com/spf13/cobra"
)

// defaultPrime is 2^127 - 1, a Mersenne prime wide enough for 15-byte
// secrets.
const defaultPrime = "170141183460469231731687303715884105727"

// shareCmd splits a secret integer into Shamir shares.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Split a secret into Shamir shares",
	Long: `Share splits a secret integer into --parts shares over GF(prime),
of which any --threshold recover it. Each output line is one share in
x:y form; feed any threshold of them back to combine.

Secrets and primes accept decimal or 0x-prefixed hex.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secretStr, _ := cmd.Flags().GetString("secret")
		parts, _ := cmd.Flags().GetInt("parts")
		threshold, _ := cmd.Flags().GetInt("threshold")
		primeStr, _ := cmd.Flags().GetString("prime")

		secret, err := parseBig(secretStr, "--secret")
		if err != nil {
			return err
		}
		prime, err := parseBig(primeStr, "--prime")
		if err != nil {
			return err
		}

		shares, err := shamir.Split(nil, secret, parts, threshold, prime)
		if err != nil {
			return err
		}
		for _, s := range shares {
			fmt.Printf("%s:%s\n", s.X, s.Y)
		}
		return nil
	},
}

// combineCmd recovers a secret from share arguments.
var combineCmd = &cobra.Command{
	Use:   "combine x1:y1 x2:y2 ...",
	Short: "Recover a secret from Shamir shares",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		primeStr, _ := cmd.Flags().GetString("prime")
		prime, err := parseBig(primeStr, "--prime")
		if err != nil {
			return err
		}

		shares := make([]shamir.Share, 0, len(args))
		for _, arg := range args {
			xs, ys, ok := strings.Cut(arg, ":")
			if !ok {
				return fmt.Errorf("share %q is not in x:y form", arg)
			}
			x, err := parseBig(xs, "share x")
			if err != nil {
				return err
			}
			y, err := parseBig(ys, "share y")
			if err != nil {
				return err
			}
			shares = append(shares, shamir.Share{X: x, Y: y})
		}

		secret, err := shamir.Combine(shares, prime)
		if err != nil {
			return err
		}
		fmt.Println(secret)
		return nil
	},
}

// parseBig parses a big integer flag value, accepting any base
// big.Int.SetString does with base 0.
func parseBig(s, flag string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, fmt.Errorf("parse %s: %q is not a number", flag, s)
	}
	return n, nil
}

func init() {
	shareCmd.Flags().String("secret", "", "secret to split, as an integer")
	shareCmd.Flags().Int("parts", 5, "number of shares to produce")
	shareCmd.Flags().Int("threshold", 3, "shares needed to recover the secret")
	shareCmd.Flags().String("prime", defaultPrime, "field modulus")

	combineCmd.Flags().String("prime", defaultPrime, "field modulus the shares were made with")
}
