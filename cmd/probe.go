package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ambience/internal/config"
	"github.com/llehouerou/ambience/internal/errmsg"
	"github.com/llehouerou/ambience/internal/player"
)

var errProbeFailed = errors.New("some tracks cannot be played")

var probeCmd = &cobra.Command{
	Use:   "probe tracks...",
	Short: "Check that tracks can be decoded",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range config.ExpandPaths(args) {
			info, err := player.Probe(path)
			if err != nil {
				failed++
				cmd.PrintErrln(errmsg.FormatWith(errmsg.OpTrackProbe, path, err))
				continue
			}
			cmd.Println(formatProbe(info, player.ReadTags(path)))
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d", errProbeFailed, failed, len(args))
		}
		return nil
	},
}

func formatProbe(info *player.Info, tags player.Tags) string {
	title := tags.Title
	if tags.Artist != "" {
		title = tags.Artist + " - " + title
	}
	return fmt.Sprintf("%-4s %6s Hz  %8v  %s  (%s)",
		info.Format,
		humanize.Comma(int64(info.SampleRate)),
		info.Duration.Round(time.Second),
		title,
		info.Path,
	)
}
