package cmd

import (
	"fmt"

	"nq2jld/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:              "version",
	TraverseChildren: true,
	Short:            "returns version ",
	Long: `returns version
`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Debug("version called")

		fmt.Fprintln(cmd.OutOrStdout(), "Version: "+pkg.VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
