package app

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ambience/internal/keymap"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/state"
	"github.com/llehouerou/ambience/internal/volume"
)

// volumeStep is the level change per volume key press.
const volumeStep = 0.05

// Options holds the collaborators of the UI model.
type Options struct {
	Controller Controller
	Volume     volume.Monitor  // may be nil
	Store      state.Interface // may be nil
	Ceiling    float64
	Stderr     <-chan string // captured backend output, may be nil
}

// Model is the bubbletea model of the session player.
type Model struct {
	Ctrl    Controller
	Volume  volume.Monitor
	Store   state.Interface
	Keys    *keymap.Resolver
	Help    help.Model
	Ceiling float64

	status       playback.Status
	sub          *playback.Subscription
	stderr       <-chan string
	width        int
	showPlaylist bool
	ErrorMsg     string
	Notice       string // shown until the next key press
}

// New creates the UI model and subscribes to controller events.
func New(opts Options) Model {
	ceiling := opts.Ceiling
	if ceiling <= 0 || ceiling > 1 {
		ceiling = volume.DefaultCeiling
	}
	return Model{
		Ctrl:    opts.Controller,
		Volume:  opts.Volume,
		Store:   opts.Store,
		Keys:    keymap.NewResolver(keymap.All),
		Help:    help.New(),
		Ceiling: ceiling,
		status:  opts.Controller.Status(),
		sub:     opts.Controller.Subscribe(),
		stderr:  opts.Stderr,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), WatchStderr(m.stderr), TickCmd())
}

// Status returns the last snapshot the model rendered from.
func (m Model) Status() playback.Status {
	return m.status
}

func (m Model) volumeLevel() float64 {
	if m.Volume == nil {
		return 0
	}
	return m.Volume.Level()
}
