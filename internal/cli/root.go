package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix turns flag names into environment variables, so --alg can
// come from CIPHERLAB_ALG and --min-length from CIPHERLAB_MIN_LENGTH.
const envPrefix = "CIPHERLAB"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cipherlab",
	Short: "Drive the study cipher implementations from the command line",
	Long: `cipherlab drives the study implementations in this module: block
ciphers (AES-128 and simplified Twofish, Serpent, RC6, MARS), hashes,
Shamir secret sharing, Schnorr signatures and classical ciphertext
analysis.

Keys, nonces and ciphertexts are hex encoded unless a flag says
otherwise. Flags can also be set through CIPHERLAB_* environment
variables, a .env file, or a cipherlab.yaml config file in the working
directory (or wherever CIPHERLAB_CONFIG points).

None of the implementations are hardened. Do not protect real data
with them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindEnv(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// bindEnv fills every flag the user did not set explicitly from the
// matching CIPHERLAB_* environment variable or config file key. A .env
// file in the working directory is loaded first; a missing file is
// fine. Environment variables win over config file values.
func bindEnv(cmd *cobra.Command) error {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("cipherlab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}
