package cmd

import (
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ambience/internal/config"
	"github.com/llehouerou/ambience/internal/errmsg"
	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/state"
	"github.com/llehouerou/ambience/internal/volume"
)

// sessionFlags holds the command-line overrides of the session settings.
type sessionFlags struct {
	duration *time.Duration // nil when the flag was not given
	lang     string
	loop     bool
	advance  string
}

func readSessionFlags(cmd *cobra.Command) sessionFlags {
	f := sessionFlags{
		lang:    lo.Must(cmd.Flags().GetString("lang")),
		loop:    lo.Must(cmd.Flags().GetBool("loop")),
		advance: lo.Must(cmd.Flags().GetString("advance")),
	}
	if cmd.Flags().Changed("duration") {
		d := lo.Must(cmd.Flags().GetDuration("duration"))
		f.duration = &d
	}
	return f
}

// resolveSession picks the playlist to load: tracks from the command line,
// then the configured default session, then the saved one. Flags override
// the duration, language and loop of whichever wins.
func resolveSession(cfg *config.Config, saved *state.SavedSession, args []string, f sessionFlags) (playback.SessionConfig, bool) {
	sess := playback.SessionConfig{
		DurationSeconds: cfg.Session.DurationSeconds,
		LanguageCode:    cfg.Session.LanguageCode,
	}
	loop := cfg.Session.Loop

	switch {
	case len(args) > 0:
		sess.Tracks = config.ExpandPaths(args)
	case cfg.HasDefaultSession():
		sess.Tracks = cfg.Session.Tracks
	case saved != nil:
		sess = playback.SessionConfig{
			Tracks:          saved.Tracks,
			DurationSeconds: saved.DurationSeconds,
			LanguageCode:    saved.LanguageCode,
		}
		loop = saved.Loop
	}

	if f.duration != nil {
		sess.DurationSeconds = int(*f.duration / time.Second)
	}
	if f.lang != "" {
		sess.LanguageCode = f.lang
	}
	if f.loop {
		loop = true
	}
	sess.LanguageCode = config.NormalizeLanguage(sess.LanguageCode)

	return sess, loop
}

// controllerOptions builds the controller settings from the configuration.
func controllerOptions(cfg *config.Config, f sessionFlags, loop bool) playback.Options {
	pc := cfg.GetPlaybackConfig()
	vc := cfg.GetVolumeConfig()

	advance := pc.Advance
	if f.advance != "" {
		advance = f.advance
	}

	return playback.Options{
		ElapsedInterval: pc.ElapsedInterval(),
		StatusInterval:  pc.StatusInterval(),
		VolumeInterval:  vc.CheckInterval(),
		Ceiling:         vc.Ceiling,
		Advance:         playback.ParseAdvancePolicy(advance),
		Loop:            loop,
	}
}

// savedSession returns the stored session when nothing else names a
// playlist and restoring is enabled.
func savedSession(cfg *config.Config, store state.Interface, args []string) *state.SavedSession {
	if store == nil || len(args) > 0 || cfg.HasDefaultSession() || !cfg.RestoreSession() {
		return nil
	}
	saved, err := store.LastSession()
	if err != nil {
		log := logger.Component("cli")
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpSessionRestore, err))
		return nil
	}
	return saved
}

// persistSession stores a non-empty session so the next run can restore it.
func persistSession(store state.Interface, sess playback.SessionConfig, loop bool) {
	if store == nil || len(sess.Tracks) == 0 {
		return
	}
	err := store.SaveSession(state.SavedSession{
		Tracks:          sess.Tracks,
		DurationSeconds: sess.DurationSeconds,
		LanguageCode:    sess.LanguageCode,
		Loop:            loop,
	})
	if err != nil {
		log := logger.Component("cli")
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpSessionSave, err))
	}
}

// initialLevel returns the saved output level capped at the ceiling, or the
// configured initial level when nothing was saved.
func initialLevel(store state.Interface, vc config.VolumeConfig) float64 {
	level := vc.Initial
	if store != nil {
		saved, ok, err := store.GetVolume()
		switch {
		case err != nil:
			log := logger.Component("cli")
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpVolumeRestore, err))
		case ok:
			level = saved
		}
	}
	return volume.NewGuard(vc.Ceiling).Limit(level)
}
