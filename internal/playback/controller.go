package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/player"
	"github.com/llehouerou/ambience/internal/volume"
)

// Sentinel errors.
var (
	ErrClosed          = errors.New("playback controller closed")
	ErrNoPlayableTrack = errors.New("no playable track in playlist")
	ErrInvalidDuration = errors.New("session duration must not be negative")
)

// Default ticker intervals.
const (
	DefaultElapsedInterval = time.Second
	DefaultStatusInterval  = time.Second
	DefaultVolumeInterval  = 200 * time.Millisecond
)

const commandBufferSize = 32

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	ElapsedInterval time.Duration
	StatusInterval  time.Duration
	VolumeInterval  time.Duration
	Ceiling         float64 // volume ceiling in (0, 1]
	Advance         AdvancePolicy
	Loop            bool // initial loop flag
}

func (o Options) withDefaults() Options {
	if o.ElapsedInterval <= 0 {
		o.ElapsedInterval = DefaultElapsedInterval
	}
	if o.StatusInterval <= 0 {
		o.StatusInterval = DefaultStatusInterval
	}
	if o.VolumeInterval <= 0 {
		o.VolumeInterval = DefaultVolumeInterval
	}
	return o
}

// Controller plays a playlist as one continuous session.
//
// All playback state is owned by a single goroutine. Commands are queued to it
// and queries are answered by it, so observers always see a state consistent
// with every command issued before the query.
type Controller struct {
	engine  player.Engine
	monitor volume.Monitor
	sink    StatusSink
	guard   volume.Guard
	opts    Options
	log     zerolog.Logger

	cfgMu sync.RWMutex
	cfg   SessionConfig

	cmds      chan func()
	quit      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once

	subsMu sync.RWMutex
	subs   []*Subscription
	closed bool

	// Owned by the run goroutine.
	state   State
	loop    bool
	session *session
	last    Status
}

// New creates a controller and starts its goroutine. monitor and sink may be
// nil, in which case the volume guard or the sink are disabled.
func New(engine player.Engine, monitor volume.Monitor, sink StatusSink, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		engine:  engine,
		monitor: monitor,
		sink:    sink,
		guard:   volume.NewGuard(opts.Ceiling),
		opts:    opts,
		log:     logger.Component("playback"),
		cmds:    make(chan func(), commandBufferSize),
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
		state:   StateIdle,
		loop:    opts.Loop,
	}
	c.last = c.snapshot()
	go c.run()
	return c
}

// SetPlaylist replaces the session configuration used by the next Play.
// A running session keeps playing its own copy.
func (c *Controller) SetPlaylist(tracks []string, durationSeconds int, languageCode string) error {
	if c.isClosed() {
		return ErrClosed
	}
	if durationSeconds < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, durationSeconds)
	}

	cfg := SessionConfig{
		Tracks:          append([]string(nil), tracks...),
		DurationSeconds: durationSeconds,
		LanguageCode:    languageCode,
	}

	c.cfgMu.Lock()
	c.cfg = cfg
	c.cfgMu.Unlock()

	c.log.Info().
		Int("tracks", len(cfg.Tracks)).
		Int("duration_seconds", durationSeconds).
		Str("language", languageCode).
		Msg("playlist set")
	for i, t := range cfg.Tracks {
		c.log.Debug().Int("index", i).Str("track", t).Msg("playlist entry")
	}
	return nil
}

// Playlist returns a copy of the configured tracks and session length.
func (c *Controller) Playlist() (tracks []string, durationSeconds int) {
	cfg := c.config()
	return cfg.Tracks, cfg.DurationSeconds
}

// LanguageCode returns the configured language code.
func (c *Controller) LanguageCode() string {
	c.cfgMu.RLock()
	defer c.cfgMu.RUnlock()
	return c.cfg.LanguageCode
}

// config returns a deep copy of the session configuration.
func (c *Controller) config() SessionConfig {
	c.cfgMu.RLock()
	defer c.cfgMu.RUnlock()
	cfg := c.cfg
	cfg.Tracks = append([]string(nil), c.cfg.Tracks...)
	return cfg
}

// Play starts a new session from the first track of the current playlist.
// An active session is replaced by a fresh one.
func (c *Controller) Play() error {
	cfg := c.config()
	return c.enqueue(func() { c.startSession(cfg) })
}

// TogglePause pauses a playing session or resumes a paused one.
func (c *Controller) TogglePause() error {
	return c.enqueue(c.togglePause)
}

// Pause pauses a playing session. It does nothing in any other state.
func (c *Controller) Pause() error {
	return c.enqueue(func() {
		if c.state == StatePlaying {
			c.togglePause()
		}
	})
}

// Resume resumes a paused session, or starts one when none is active.
// It does nothing while playing.
func (c *Controller) Resume() error {
	return c.enqueue(func() {
		switch c.state {
		case StatePlaying:
		case StatePaused:
			c.togglePause()
		default:
			c.startSession(c.config())
		}
	})
}

// PlayPause toggles pause on an active session, or starts one when none is
// active.
func (c *Controller) PlayPause() error {
	return c.enqueue(func() {
		if c.state.IsActive() {
			c.togglePause()
			return
		}
		c.startSession(c.config())
	})
}

// ToggleLoop flips the loop flag. It applies to the running session and to
// future ones.
func (c *Controller) ToggleLoop() error {
	return c.enqueue(c.toggleLoop)
}

// Stop ends the active session. When it returns, the session tickers are
// stopped and the track handle is released.
func (c *Controller) Stop() error {
	return c.call(func() { c.stopSession(StopRequested) })
}

// IsSessionActive reports whether a session is playing or paused.
func (c *Controller) IsSessionActive() bool {
	return c.State().IsActive()
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.Status().State
}

// Status returns the current snapshot. After Close it returns the last one.
func (c *Controller) Status() Status {
	var st Status
	if err := c.call(func() { st = c.snapshot() }); err != nil {
		<-c.exited
		return c.last
	}
	return st
}

// Subscribe returns a new subscription for controller events.
// After Close the subscription is returned already done.
func (c *Controller) Subscribe() *Subscription {
	sub := newSubscription()
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close ends any active session, stops the controller goroutine and closes
// all subscriptions. It is safe to call more than once.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		close(c.quit)
		<-c.exited

		c.subsMu.Lock()
		c.closed = true
		for _, sub := range c.subs {
			sub.close()
		}
		c.subs = nil
		c.subsMu.Unlock()
	})
	return nil
}

func (c *Controller) isClosed() bool {
	select {
	case <-c.quit:
		return true
	default:
		return false
	}
}

// enqueue hands fn to the controller goroutine without waiting for it.
func (c *Controller) enqueue(fn func()) error {
	if c.isClosed() {
		return ErrClosed
	}
	select {
	case c.cmds <- fn:
		return nil
	case <-c.quit:
		return ErrClosed
	}
}

// call runs fn on the controller goroutine and waits for it to finish.
func (c *Controller) call(fn func()) error {
	done := make(chan struct{})
	if err := c.enqueue(func() {
		fn()
		close(done)
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-c.exited:
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

func (c *Controller) run() {
	defer close(c.exited)
	for {
		var (
			elapsedC, statusC, volumeC <-chan time.Time
			doneC                      <-chan player.Completion
		)
		if s := c.session; s != nil {
			elapsedC = s.elapsed.C
			statusC = s.status.C
			if s.volume != nil {
				volumeC = s.volume.C
			}
			if s.handle != nil {
				doneC = s.handle.Done()
			}
		}

		select {
		case fn := <-c.cmds:
			fn()
		case <-elapsedC:
			c.onElapsedTick()
		case <-statusC:
			c.publish()
		case <-volumeC:
			c.onVolumeTick()
		case comp := <-doneC:
			c.onCompletion(comp)
		case <-c.quit:
			c.stopSession(StopRequested)
			return
		}
	}
}

// snapshot builds a Status from the goroutine-owned state.
func (c *Controller) snapshot() Status {
	st := Status{
		State:   c.state,
		Playing: c.state == StatePlaying,
		Loop:    c.loop,
	}
	if s := c.session; s != nil {
		st.SessionID = s.id
		st.TrackIndex = s.index
		st.Track = s.tracks[s.index]
		st.TrackCount = len(s.tracks)
		st.DurationSeconds = s.duration
		st.ElapsedSeconds = s.elapsedSeconds
		return st
	}
	cfg := c.config()
	st.TrackCount = len(cfg.Tracks)
	st.DurationSeconds = cfg.DurationSeconds
	return st
}

// publish sends the current snapshot to the sink and all subscribers.
func (c *Controller) publish() {
	st := c.snapshot()
	c.last = st
	if c.sink != nil {
		c.sink.Publish(st)
	}
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendStatus(st)
	}
}

func (c *Controller) setState(next State) {
	c.transition(StateChange{Previous: c.state, Current: next})
}

func (c *Controller) setStopped(reason StopReason) {
	c.transition(StateChange{Previous: c.state, Current: StateStopped, Reason: reason})
}

func (c *Controller) transition(e StateChange) {
	if e.Previous == e.Current {
		return
	}
	c.state = e.Current
	c.log.Debug().Stringer("from", e.Previous).Stringer("to", e.Current).Msg("state changed")

	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendState(e)
	}
}

func (c *Controller) emitTrack(e TrackChange) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendTrack(e)
	}
}

func (c *Controller) emitError(e ErrorEvent) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendError(e)
	}
}
