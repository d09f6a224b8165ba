package playback

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/ambience/internal/player"
)

// session is the state of one Play() run. It is only touched by the
// controller goroutine.
type session struct {
	id             string
	tracks         []string
	duration       int
	index          int
	elapsedSeconds int
	handle         player.Handle

	elapsed *time.Ticker
	status  *time.Ticker
	volume  *time.Ticker
}

func (s *session) stopTickers() {
	s.elapsed.Stop()
	s.status.Stop()
	if s.volume != nil {
		s.volume.Stop()
	}
}

func (s *session) release() {
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

func (c *Controller) startSession(cfg SessionConfig) {
	if len(cfg.Tracks) == 0 {
		c.log.Warn().Msg("play refused: playlist is empty")
		return
	}

	if c.session != nil {
		c.log.Info().Str("session", c.session.id).Msg("restarting active session")
		c.session.stopTickers()
		c.session.release()
		c.session = nil
	}

	s := &session{
		id:       uuid.NewString(),
		tracks:   cfg.Tracks,
		duration: cfg.DurationSeconds,
	}
	if !c.load(s, 0, true) {
		c.emitError(ErrorEvent{Operation: OpPlay, Err: ErrNoPlayableTrack})
		c.log.Error().Err(ErrNoPlayableTrack).Msg("play failed")
		if c.state.IsActive() {
			c.setStopped(StopUnplayable)
			c.publish()
		}
		return
	}

	s.handle.Play()
	s.elapsed = time.NewTicker(c.opts.ElapsedInterval)
	s.status = time.NewTicker(c.opts.StatusInterval)
	if c.monitor != nil {
		s.volume = time.NewTicker(c.opts.VolumeInterval)
	}
	c.session = s

	c.log.Info().
		Str("session", s.id).
		Int("tracks", len(s.tracks)).
		Int("duration_seconds", s.duration).
		Bool("loop", c.loop).
		Msg("session started")

	c.setState(StatePlaying)
	c.emitTrack(TrackChange{SessionID: s.id, PreviousIndex: -1, Index: s.index, Path: s.tracks[s.index]})
	c.publish()
}

// load opens the first loadable track starting at index start. With wrap the
// search continues at the beginning of the playlist; every track is tried at
// most once.
func (c *Controller) load(s *session, start int, wrap bool) bool {
	n := len(s.tracks)
	for i := range n {
		idx := start + i
		if idx >= n {
			if !wrap {
				return false
			}
			idx %= n
		}
		path := s.tracks[idx]
		h, err := c.engine.Load(path)
		if err != nil {
			c.log.Warn().Err(err).Str("track", path).Int("index", idx).Msg("track load failed, skipping")
			c.emitError(ErrorEvent{Operation: OpLoad, Path: path, Err: err})
			continue
		}
		s.index = idx
		s.handle = h
		c.log.Debug().Str("track", path).Int("index", idx).Msg("track loaded")
		return true
	}
	return false
}

func (c *Controller) togglePause() {
	s := c.session
	switch c.state {
	case StatePlaying:
		s.handle.Pause()
		c.setState(StatePaused)
		c.log.Info().Str("session", s.id).Msg("paused")
	case StatePaused:
		s.handle.Play()
		c.setState(StatePlaying)
		c.log.Info().Str("session", s.id).Msg("resumed")
	default:
		c.log.Debug().Stringer("state", c.state).Msg("toggle pause ignored: no active session")
		return
	}
	c.publish()
}

func (c *Controller) toggleLoop() {
	c.loop = !c.loop
	c.log.Info().Bool("loop", c.loop).Msg("loop toggled")
	c.publish()
}

// stopSession ends the active session and resets the position.
func (c *Controller) stopSession(reason StopReason) {
	s := c.session
	if s == nil {
		c.log.Debug().Stringer("state", c.state).Msg("stop ignored: no active session")
		return
	}
	s.stopTickers()
	s.release()
	c.session = nil
	c.log.Info().
		Str("session", s.id).
		Int("elapsed_seconds", s.elapsedSeconds).
		Stringer("reason", reason).
		Msg("session stopped")

	c.setStopped(reason)
	c.publish()
}

func (c *Controller) onElapsedTick() {
	s := c.session
	if c.state != StatePlaying {
		return
	}
	s.elapsedSeconds++
	if s.duration <= 0 || s.elapsedSeconds < s.duration {
		return
	}

	if !c.loop {
		c.log.Info().Str("session", s.id).Int("duration_seconds", s.duration).Msg("session length reached")
		c.stopSession(StopSessionLength)
		return
	}

	c.log.Info().Str("session", s.id).Msg("session length reached, looping")
	s.elapsedSeconds = 0
	if err := s.handle.SeekToStart(); err != nil {
		path := s.tracks[s.index]
		c.log.Warn().Err(err).Str("track", path).Msg("seek to start failed, reloading track")
		c.emitError(ErrorEvent{Operation: OpSeek, Path: path, Err: err})
		c.reload(s)
		return
	}
	c.publish()
}

// reload replaces the current handle with a fresh one for the same track.
func (c *Controller) reload(s *session) {
	prev := s.index
	s.release()
	if !c.load(s, prev, true) {
		c.endUnplayable(s)
		return
	}
	c.resume(s, prev)
}

func (c *Controller) onCompletion(comp player.Completion) {
	s := c.session
	if comp.Failed() {
		c.log.Warn().Err(comp.Err).Str("track", comp.Path).Msg("track decode failed, skipping")
		c.emitError(ErrorEvent{Operation: OpDecode, Path: comp.Path, Err: comp.Err})
	} else {
		c.log.Debug().Str("track", comp.Path).Msg("track finished")
	}
	c.advance(s)
}

// advance moves the session to the next loadable track of the ring.
func (c *Controller) advance(s *session) {
	prev := s.index
	s.release()

	wrap := c.opts.Advance == AdvanceWrap || c.loop
	if !c.load(s, prev+1, wrap) {
		if wrap {
			c.endUnplayable(s)
			return
		}
		c.log.Info().Str("session", s.id).Msg("end of playlist")
		c.stopSession(StopEndOfPlaylist)
		return
	}
	c.resume(s, prev)
}

// resume starts the freshly loaded handle unless the session is paused.
func (c *Controller) resume(s *session, prev int) {
	if c.state == StatePlaying {
		s.handle.Play()
	}
	c.emitTrack(TrackChange{SessionID: s.id, PreviousIndex: prev, Index: s.index, Path: s.tracks[s.index]})
	c.publish()
}

func (c *Controller) endUnplayable(s *session) {
	err := fmt.Errorf("session %s: %w", s.id, ErrNoPlayableTrack)
	c.log.Error().Err(err).Msg("ending session")
	c.emitError(ErrorEvent{Operation: OpPlay, Err: err})
	s.index = 0
	c.stopSession(StopUnplayable)
}

func (c *Controller) onVolumeTick() {
	clamped, observed := c.guard.Check(c.monitor)
	if clamped {
		c.log.Info().
			Float64("from", observed).
			Float64("to", c.guard.Ceiling).
			Msg("volume limited")
	}
}
