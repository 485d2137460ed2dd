package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is injected at build time via
// -ldflags "-X github.com/cipherlab/cipherlab-go/internal/cli.Version=x.y.z".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cipherlab version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}
