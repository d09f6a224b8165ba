package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ambience/internal/errmsg"
	"github.com/llehouerou/ambience/internal/keymap"
	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/notify"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/volume"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.Help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case PlaybackMessage:
		return m.handlePlaybackMsg(msg)
	case StderrMsg:
		log := logger.Component("app")
		log.Warn().Str("line", msg.Line).Msg("audio backend")
		m.ErrorMsg = msg.Line
		return m, WatchStderr(m.stderr)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.Keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	m.ErrorMsg = ""
	m.Notice = ""

	var err error
	op := errmsg.OpSessionStart
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil
	case keymap.ActionShowPlaylist:
		m.showPlaylist = !m.showPlaylist
		return m, nil
	case keymap.ActionPlay:
		err = m.Ctrl.Play()
	case keymap.ActionPlayPause:
		if m.Ctrl.Status().State.IsActive() {
			err = m.Ctrl.TogglePause()
		} else {
			err = m.Ctrl.Play()
		}
	case keymap.ActionStop:
		op = errmsg.OpSessionStop
		err = m.Ctrl.Stop()
	case keymap.ActionToggleLoop:
		err = m.Ctrl.ToggleLoop()
	case keymap.ActionVolumeUp:
		m.adjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.adjustVolume(-volumeStep)
	}
	if err != nil {
		m.ErrorMsg = errmsg.Format(op, err)
	}
	m.status = m.Ctrl.Status()
	return m, nil
}

// adjustVolume changes the output level without ever exceeding the ceiling.
func (m *Model) adjustVolume(delta float64) {
	if m.Volume == nil {
		return
	}
	level := volume.NewGuard(m.Ceiling).Limit(m.Volume.Level() + delta)
	m.Volume.SetLevel(level)
	if m.Store != nil {
		m.Store.SaveVolume(level)
	}
}

func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, TickCmd()
	case ServiceStatusMsg:
		m.status = playback.Status(msg)
	case ServiceStateChangedMsg:
		m.status = m.Ctrl.Status()
		if msg.Current == playback.StateStopped {
			if n, ok := notify.ForStop(msg.Reason, m.Ctrl.LanguageCode()); ok {
				m.Notice = n.Title
			}
		}
	case ServiceTrackChangedMsg:
		m.status = m.Ctrl.Status()
	case ServiceErrorMsg:
		context := ""
		if msg.Path != "" {
			context = filepath.Base(msg.Path)
		}
		m.ErrorMsg = errmsg.FormatWith(errmsg.ForPlayback(msg.Operation), context, msg.Err)
	case ServiceClosedMsg:
		return m, tea.Quit
	}
	return m, m.WatchServiceEvents()
}
