package player

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/llehouerou/ambience/internal/logger"
)

const resampleQuality = 4

// Output plays tracks on the system speaker through beep.
// It also exposes a software output level so a volume guard can cap it.
type Output struct {
	mu          sync.Mutex
	initialized bool
	sampleRate  beep.SampleRate
	level       float64
	current     *track
	log         zerolog.Logger
}

// NewOutput creates an output with the given initial level (0.0 to 1.0).
// The speaker is initialized lazily at the sample rate of the first track.
func NewOutput(level float64) *Output {
	return &Output{
		level: clampLevel(level),
		log:   logger.Component("player"),
	}
}

// Load decodes path and queues it on the speaker, paused.
// The previous handle, if still alive, is stopped first.
func (o *Output) Load(path string) (Handle, error) {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.ensureSpeakerLocked(format.SampleRate); err != nil {
		streamer.Close()
		return nil, err
	}

	if o.current != nil {
		o.current.Stop()
		o.current = nil
	}

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != o.sampleRate {
		playStreamer = beep.Resample(resampleQuality, format.SampleRate, o.sampleRate, streamer)
	}

	t := &track{
		path:     path,
		streamer: streamer,
		done:     make(chan Completion, 1),
		state:    Loaded,
	}
	t.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: true}
	t.volume = &effects.Volume{
		Streamer: t.ctrl,
		Base:     2,
		Volume:   levelToVolume(o.level),
		Silent:   o.level <= 0,
	}
	o.current = t

	speaker.Play(beep.Seq(t.volume, beep.Callback(t.finish)))

	o.log.Debug().
		Str("path", path).
		Int("sample_rate", int(format.SampleRate)).
		Dur("length", format.SampleRate.D(streamer.Len())).
		Msg("track loaded")

	return t, nil
}

func (o *Output) ensureSpeakerLocked(rate beep.SampleRate) error {
	if o.initialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	o.sampleRate = rate
	o.initialized = true
	return nil
}

// Level returns the current output level (0.0 to 1.0).
func (o *Output) Level() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.level
}

// SetLevel sets the output level, clamped to [0, 1], and applies it to the
// live track.
func (o *Output) SetLevel(level float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.level = clampLevel(level)
	if o.current != nil {
		o.current.applyLevel(o.level)
	}
}

// Close stops the live track and releases the speaker.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current != nil {
		o.current.Stop()
		o.current = nil
	}
	if o.initialized {
		speaker.Close()
		o.initialized = false
	}
}

// track is the Handle returned by Output.Load.
type track struct {
	path     string
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	done     chan Completion

	mu    sync.Mutex
	state State

	// Written from the speaker goroutine, which holds the speaker lock.
	// Never take mu there.
	finished atomic.Bool
	released atomic.Bool
	stopOnce sync.Once
}

func (t *track) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.CanPlay() {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	t.state = Playing
}

func (t *track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.CanPause() {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
	t.state = Paused
}

func (t *track) Stop() {
	t.stopOnce.Do(func() {
		t.released.Store(true)

		t.mu.Lock()
		t.state = Released
		t.mu.Unlock()

		// A nil streamer drains the sequence on the next buffer;
		// finish sees released and stays silent.
		speaker.Lock()
		t.ctrl.Streamer = nil
		speaker.Unlock()

		_ = t.streamer.Close()
	})
}

func (t *track) SeekToStart() error {
	if t.released.Load() {
		return fmt.Errorf("seek %s: track released", t.path)
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.streamer.Seek(0)
}

func (t *track) IsPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == Playing && !t.finished.Load()
}

func (t *track) Done() <-chan Completion {
	return t.done
}

// finish runs on the speaker goroutine when the sequence reaches its end.
func (t *track) finish() {
	if t.released.Load() || !t.finished.CompareAndSwap(false, true) {
		return
	}
	select {
	case t.done <- Completion{Path: t.path, Err: t.streamer.Err()}:
	default:
	}
}

func (t *track) applyLevel(level float64) {
	if t.released.Load() {
		return
	}
	speaker.Lock()
	t.volume.Volume = levelToVolume(level)
	t.volume.Silent = level <= 0
	speaker.Unlock()
}
