package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/editor"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = min(msg.Width, maxWidth) - 4
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		m.logger.Debug(spew.Sdump(msg))

		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tickMsg:
		return m.handlePlaybackTick()

	case resultMsg:
		return m.handleResult(msg)

	case cutDoneMsg:
		return m.handleCutDone(msg)

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "review saved"
		}

		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor()

	switch {
	case key.Matches(msg, m.keys.abort):
		m.stopPlayback()

		// quit once the running extractions have been recorded
		if m.cutting {
			m.aborting = true
			m.cancel()
			m.status = "aborting, waiting for the running tracks to stop"

			return m, nil
		}

		return m, tea.Quit

	case key.Matches(msg, m.keys.quit):
		if m.cutting {
			m.status = "cutting is in progress, press ctrl+c to abort"
			return m, nil
		}

		m.stopPlayback()

		if err := m.save(); err != nil {
			m.logger.Error("unable to save review", slog.Any("error", err))
		}

		return m, tea.Quit

	case key.Matches(msg, m.keys.nudgeLeft):
		e.Nudge(-m.nudge)

	case key.Matches(msg, m.keys.nudgeRight):
		e.Nudge(m.nudge)

	case key.Matches(msg, m.keys.jumpLeft):
		e.Nudge(-jump)

	case key.Matches(msg, m.keys.jumpRight):
		e.Nudge(jump)

	case key.Matches(msg, m.keys.next):
		m.selectBoundary(m.current + 1)

	case key.Matches(msg, m.keys.prev):
		m.selectBoundary(m.current - 1)

	case key.Matches(msg, m.keys.play):
		return m, m.togglePlayback()

	case key.Matches(msg, m.keys.snap):
		m.snapToPlayback()

	case key.Matches(msg, m.keys.hide):
		e.HidePlaybackMarker()

	case key.Matches(msg, m.keys.cut):
		return m, m.startCut()

	case key.Matches(msg, m.keys.save):
		return m, func() tea.Msg {
			return savedMsg{err: m.save()}
		}

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleMouse drags the cut of the current boundary. A drag must start
// inside the plot but may leave it.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	rect := m.plotRect()

	x := float64(msg.X) + 0.5
	inside := rect.Contains(editor.Point{X: x, Y: float64(msg.Y) + 0.5})

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}

		m.dragging = true
	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}

		m.dragging = false
	default:
		return m, nil
	}

	m.editor().Interact(&x, nil, rect)

	return m, nil
}

func (m *Model) selectBoundary(i int) {
	n := len(m.review.Editors())

	m.current = (i%n + n) % n
	m.dragging = false
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// togglePlayback plays the recording around the current cut, or stops the
// playback in progress.
func (m *Model) togglePlayback() tea.Cmd {
	if m.player == nil {
		m.status = "playback is not available"
		return nil
	}

	if _, playing := m.player.Position(); playing && m.playing == m.current {
		m.stopPlayback()
		return nil
	}

	m.stopPlayback()

	e := m.editor()

	from := e.CutTime().Add(-preRoll)

	if err := m.player.Play(from, playLength); err != nil {
		m.status = err.Error()
		return nil
	}

	m.playing = m.current

	e.ShowPlaybackMarker(from)

	return tick()
}

func (m *Model) stopPlayback() {
	if m.player != nil {
		m.player.Stop()
	}

	m.playing = -1
}

// handlePlaybackTick moves the playback marker. The marker stays where
// playback ended so the cut can be snapped to it.
func (m *Model) handlePlaybackTick() (tea.Model, tea.Cmd) {
	if m.playing < 0 || m.player == nil {
		return m, nil
	}

	e := m.review.Editors()[m.playing]

	pos, playing := m.player.Position()
	if !playing {
		m.playing = -1
		return m, nil
	}

	e.ShowPlaybackMarker(pos)

	return m, tick()
}

// snapToPlayback moves the cut to the column of the playback marker.
func (m *Model) snapToPlayback() {
	e := m.editor()

	pos, ok := e.PlaybackMarker()
	if !ok {
		m.status = "play the boundary first to place the marker"
		return
	}

	rect := m.plotRect()
	x := e.XAt(pos, rect)

	e.Interact(nil, &x, rect)
}

// startCut applies the reviewed cut points and cuts the session in the
// background. Results arrive as resultMsg followed by one cutDoneMsg.
func (m *Model) startCut() tea.Cmd {
	if m.cutting {
		return nil
	}

	if m.cutFn == nil {
		m.status = "cutting is not available"
		return nil
	}

	sess, err := m.review.Apply()
	if err != nil {
		m.status = err.Error()
		return nil
	}

	if err := m.save(); err != nil {
		m.logger.Error("unable to save review", slog.Any("error", err))
	}

	ctx, cancel := context.WithCancel(context.Background())

	m.cancel = cancel
	m.cutting = true
	m.cutCount = 0
	m.status = fmt.Sprintf("cutting %d tracks", len(sess.Songs))

	events := make(chan tea.Msg, len(sess.Songs)+1)
	done := make(chan struct{})

	m.events, m.done = events, done

	go func() {
		defer close(done)

		rep, err := m.cutFn(ctx, sess, func(r cut.Result) {
			events <- resultMsg{result: r}
		})

		events <- cutDoneMsg{report: rep, err: err}
	}()

	return m.waitForCut()
}

func (m *Model) waitForCut() tea.Cmd {
	events := m.events

	return func() tea.Msg {
		return <-events
	}
}

func (m *Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	r := msg.result

	m.cutCount++

	if r.OK() {
		m.review.MarkFinished(r.Window.Song)
	} else {
		m.status = r.Err.Error()
	}

	return m, m.waitForCut()
}

func (m *Model) handleCutDone(msg cutDoneMsg) (tea.Model, tea.Cmd) {
	m.cutting = false
	m.report, m.err = msg.report, msg.err

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if m.aborting {
		return m, tea.Quit
	}

	switch {
	case msg.err != nil:
		m.status = msg.err.Error()
	case msg.report != nil && len(msg.report.Failed()) > 0:
		m.status = fmt.Sprintf(
			"%d tracks cut, %d failed",
			msg.report.Succeeded(),
			len(msg.report.Failed()),
		)
	case msg.report != nil:
		m.status = fmt.Sprintf("%d tracks cut", msg.report.Succeeded())
	}

	return m, nil
}

func (m *Model) save() error {
	if m.saveFn == nil {
		return nil
	}

	return m.saveFn(m.review.CutTimes())
}
