// internal/player/interface.go
package player

// Completion reports how a track ended.
// Err is nil when the track played to the end and holds the decoder error otherwise.
type Completion struct {
	Path string
	Err  error
}

// Failed returns true if the track ended because of a decode error.
func (c Completion) Failed() bool {
	return c.Err != nil
}

// Handle controls one loaded track. It owns the decoder and the open file
// until Stop is called; Stop is idempotent and suppresses any later Completion.
type Handle interface {
	Play()
	Pause()
	Stop()
	SeekToStart() error
	IsPlaying() bool
	// Done receives exactly one Completion when the track ends on its own.
	Done() <-chan Completion
}

// Engine decodes track locators into playable handles.
type Engine interface {
	Load(path string) (Handle, error)
}

// Verify Output implements Engine at compile time.
var _ Engine = (*Output)(nil)
