package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/setsplit/internal/editor"
	"github.com/ayoisaiah/setsplit/internal/song"
	"github.com/ayoisaiah/setsplit/internal/ui"
)

type styles struct {
	title    lipgloss.Style
	hint     lipgloss.Style
	current  lipgloss.Style
	pending  lipgloss.Style
	finished lipgloss.Style
	marker   lipgloss.Style
	playback lipgloss.Style
	status   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		hint:     lipgloss.NewStyle().Faint(true),
		current:  lipgloss.NewStyle().Bold(true).Underline(true),
		pending:  lipgloss.NewStyle().Foreground(ui.PendingColor()),
		finished: lipgloss.NewStyle().Foreground(ui.FinishedColor()),
		marker:   lipgloss.NewStyle().Foreground(ui.MarkerColor()).Bold(true),
		playback: lipgloss.NewStyle().Foreground(ui.MarkerColor()).Faint(true),
		status:   lipgloss.NewStyle().Italic(true),
	}
}

var stateIcons = map[editor.State]string{
	editor.Pending:           "○",
	editor.PartiallyFinished: "◐",
	editor.FullyFinished:     "●",
}

func songTitle(s *song.Song, fallback string) string {
	if s == nil {
		return fallback
	}

	return s.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}

	return string(r[:n-1]) + "…"
}

// headerView is exactly headerLines lines long.
func (m *Model) headerView(e *editor.Editor) string {
	width := min(m.width, maxWidth)
	excerpt := e.Excerpt()

	title := fmt.Sprintf(
		"%s · boundary %d/%d · %s %s",
		m.review.Session().Name,
		m.current+1,
		len(m.review.Editors()),
		stateIcons[e.State()],
		e.State(),
	)

	names := fmt.Sprintf(
		"%s  │  %s",
		songTitle(excerpt.SongBefore, "(start of recording)"),
		songTitle(excerpt.SongAfter, "(end of set)"),
	)

	cut := fmt.Sprintf("cut at %s (%ss)", e.CutTime(), e.CutTime().SecondsString())

	if t, ok := e.PlaybackMarker(); ok {
		cut += fmt.Sprintf("  playback %s", t)
	}

	return strings.Join([]string{
		m.styles.title.Render(truncate(title, width)),
		truncate(names, width),
		m.styles.hint.Render(truncate(cut, width)),
	}, "\n")
}

// axisView labels the start and end of the plotted excerpt.
func (m *Model) axisView(e *editor.Editor, rect editor.Rect) string {
	env := e.Excerpt().Excerpt

	left := env.AbsoluteTimeByRelativeProgress(0).String()
	right := env.AbsoluteTimeByRelativeProgress(1).String()

	begin, width := editor.PlotArea(rect)

	pad := int(begin)
	gap := int(begin+width) - pad - len(left) - len(right)

	if gap < 1 {
		return m.styles.hint.Render(left + " " + right)
	}

	return m.styles.hint.Render(
		strings.Repeat(" ", pad) + left + strings.Repeat(" ", gap) + right,
	)
}

// boundariesView lists every boundary with its state.
func (m *Model) boundariesView() string {
	var b strings.Builder

	for i, e := range m.review.Editors() {
		icon := stateIcons[e.State()]

		if i == m.current {
			icon = m.styles.current.Render(icon)
		}

		b.WriteString(icon)
		b.WriteByte(' ')
	}

	return b.String()
}

func (m *Model) statusView() string {
	if m.cutting {
		total := len(m.review.Session().Songs)

		return m.progress.ViewAs(float64(m.cutCount) / float64(max(total, 1)))
	}

	return m.styles.status.Render(m.status)
}

func (m *Model) View() string {
	e := m.editor()
	rect := m.plotRect()

	return strings.Join([]string{
		m.headerView(e),
		m.renderPlot(e, rect),
		m.axisView(e, rect),
		m.boundariesView(),
		m.statusView(),
		m.help.View(m.keys),
	}, "\n")
}
