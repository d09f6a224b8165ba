package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ambience/internal/app"
	"github.com/llehouerou/ambience/internal/config"
	"github.com/llehouerou/ambience/internal/errmsg"
	"github.com/llehouerou/ambience/internal/icons"
	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/mpris"
	"github.com/llehouerou/ambience/internal/notify"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/player"
	"github.com/llehouerou/ambience/internal/state"
	"github.com/llehouerou/ambience/internal/stderr"
)

var errNoTracks = errors.New("no tracks to play: pass tracks or set [session] tracks in config.toml")

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	headless := lo.Must(cmd.Flags().GetBool("headless"))
	closeLog, err := setupLogging(cmd, cfg, headless)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer closeLog()
	log := logger.Component("cli")

	store := openStore(cfg)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("close state database")
			}
		}()
	}

	flags := readSessionFlags(cmd)
	sess, loop := resolveSession(cfg, savedSession(cfg, store, args), args, flags)
	if headless && len(sess.Tracks) == 0 {
		return errNoTracks
	}

	output := player.NewOutput(initialLevel(store, cfg.GetVolumeConfig()))
	defer output.Close()

	var sink playback.StatusSink
	if headless {
		sink = jsonLinesSink(cmd.OutOrStdout())
	}

	ctrl := playback.New(output, output, sink, controllerOptions(cfg, flags, loop))
	defer func() { _ = ctrl.Close() }()

	if err := ctrl.SetPlaylist(sess.Tracks, sess.DurationSeconds, sess.LanguageCode); err != nil {
		return errors.New(errmsg.Format(errmsg.OpSessionStart, err))
	}
	persistSession(store, sess, loop)

	if cfg.NotificationsEnabled() {
		startNotifications(ctrl)
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(ctrl, output)
		if err != nil {
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close() //nolint:errcheck // best effort on exit
		}
	}

	log.Info().
		Int("tracks", len(sess.Tracks)).
		Int("duration_seconds", sess.DurationSeconds).
		Str("language", sess.LanguageCode).
		Bool("loop", loop).
		Bool("headless", headless).
		Msg("starting")

	if headless {
		return runHeadless(cmd.Context(), ctrl)
	}
	icons.Init(cfg.Icons)
	return runTUI(ctrl, output, store, cfg.GetVolumeConfig().Ceiling, len(sess.Tracks) > 0)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := lo.Must(cmd.Flags().GetString("config")); path != "" {
		return config.LoadWithOverride(path)
	}
	return config.Load()
}

// setupLogging logs to stderr in headless mode and to the log file otherwise,
// since the terminal belongs to the UI.
func setupLogging(cmd *cobra.Command, cfg *config.Config, headless bool) (func(), error) {
	lc := cfg.GetLogConfig()
	if level := lo.Must(cmd.Flags().GetString("log-level")); level != "" {
		lc.Level = level
	}

	if headless {
		logger.Init(lc.Level, lc.Pretty, cmd.ErrOrStderr())
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logger.Init(lc.Level, false, f)
	return func() { _ = f.Close() }, nil
}

// openStore opens the session store. Playback works without it, so a
// failure is only logged.
func openStore(cfg *config.Config) state.Interface {
	m, err := state.Open(cfg.State.Path)
	if err != nil {
		log := logger.Component("cli")
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpStateOpen, err))
		return nil
	}
	return m
}

// jsonLinesSink writes every published status as one JSON object per line.
func jsonLinesSink(w io.Writer) playback.StatusSink {
	enc := json.NewEncoder(w)
	log := logger.Component("cli")
	return playback.StatusSinkFunc(func(st playback.Status) {
		if err := enc.Encode(st); err != nil {
			log.Debug().Err(err).Msg("write status")
		}
	})
}

// runHeadless plays until the session ends or the process is interrupted.
func runHeadless(ctx context.Context, ctrl *playback.Controller) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub := ctrl.Subscribe()
	if err := ctrl.Play(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpSessionStart, err))
	}

	for {
		select {
		case <-ctx.Done():
			return drainPlaybackErrors(sub)
		case <-sub.Done:
			return nil
		case e := <-sub.Error:
			if err := reportPlaybackError(e); err != nil {
				return err
			}
		case e := <-sub.StateChanged:
			if e.Current == playback.StateStopped {
				return drainPlaybackErrors(sub)
			}
		}
	}
}

// drainPlaybackErrors reports the errors still queued on sub, which may have
// been emitted just before the stop or the signal.
func drainPlaybackErrors(sub *playback.Subscription) error {
	for {
		select {
		case e := <-sub.Error:
			if err := reportPlaybackError(e); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// reportPlaybackError logs e and returns an error when the session could not
// play anything.
func reportPlaybackError(e playback.ErrorEvent) error {
	msg := errmsg.FormatWith(errmsg.ForPlayback(e.Operation), e.Path, e.Err)
	if errors.Is(e.Err, playback.ErrNoPlayableTrack) {
		return errors.New(msg)
	}
	log := logger.Component("cli")
	log.Warn().
		Err(e.Err).
		Str("op", e.Operation).
		Str("path", e.Path).
		Msg(msg)
	return nil
}

// startNotifications forwards session ends to the desktop until ctrl is closed.
func startNotifications(ctrl *playback.Controller) {
	n, err := notify.New()
	if err != nil {
		log := logger.Component("cli")
		log.Debug().Err(err).Msg("notifications unavailable")
		return
	}
	go notify.Watch(ctrl.Subscribe(), n, ctrl)
}

func runTUI(ctrl *playback.Controller, output *player.Output, store state.Interface, ceiling float64, autoplay bool) error {
	var lines <-chan string
	capture, err := stderr.Start()
	if err != nil {
		log := logger.Component("cli")
		log.Warn().Err(err).Msg("stderr capture unavailable")
	} else {
		defer capture.Stop()
		lines = capture.Lines
	}

	model := app.New(app.Options{
		Controller: ctrl,
		Volume:     output,
		Store:      store,
		Ceiling:    ceiling,
		Stderr:     lines,
	})

	if autoplay {
		if err := ctrl.Play(); err != nil {
			return errors.New(errmsg.Format(errmsg.OpSessionStart, err))
		}
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
