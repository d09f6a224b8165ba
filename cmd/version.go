package cmd

import (
	"runtime"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(version)
			return
		}
		cmd.Printf("%s %s %s/%s\n", appName, version, runtime.GOOS, runtime.GOARCH)
	},
}
