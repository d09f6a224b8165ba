// Package cmd implements the command-line interface for ambience.
package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const appName = "ambience"

// Set at build time with -ldflags "-X github.com/llehouerou/ambience/cmd.version=..."
var version = "dev"

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Read an extra configuration file after the default ones")
	rootCmd.PersistentFlags().String("log-level", "", "Override the log level (debug, info, warn, error)")

	rootCmd.Flags().DurationP("duration", "d", 0, "Session length, e.g. 20m (0 plays until stopped)")
	rootCmd.Flags().StringP("lang", "l", "", "Language code for announcements (ca, es, en, fr)")
	rootCmd.Flags().Bool("loop", false, "Keep cycling tracks when the session length is reached")
	rootCmd.Flags().String("advance", "", "End-of-playlist policy: wrap or stop_at_end")
	rootCmd.Flags().Bool("headless", false, "Play without the terminal UI and print status as JSON lines")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("advance", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"wrap", "stop_at_end"}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("lang", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"ca", "es", "en", "fr"}, cobra.ShellCompDirectiveNoFileComp
	}))

	rootCmd.AddCommand(probeCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   appName + " [tracks...]",
	Short: "Plays a looping playlist of ambient tracks for a timed session",
	Long: "ambience plays a playlist in a ring for a fixed session length, keeping the\n" +
		"output volume under a safe ceiling. Without tracks it plays the configured\n" +
		"default playlist or the last one it was given.",
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
