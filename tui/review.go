// Package tui is the terminal front end for reviewing the cut points of a
// session before it is cut
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/editor"
	"github.com/ayoisaiah/setsplit/internal/review"
	"github.com/ayoisaiah/setsplit/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// lines above the plot; mouse rows are measured from the top
	headerLines = 3
	// axis, boundary list, status, help
	footerLines = 5

	minPlotRows = 4
	maxPlotRows = 16

	maxWidth = 160

	defaultNudge = 100 * time.Millisecond
	jump         = time.Second

	// playback starts this long before the cut
	preRoll      = 2 * time.Second
	playLength   = 4 * time.Second
	tickInterval = 50 * time.Millisecond
)

// Player plays the recording under review.
type Player interface {
	Play(from audiotime.AudioTime, d time.Duration) error
	Position() (audiotime.AudioTime, bool)
	Stop()
}

// CutFunc cuts sess, calling onFinished once per track in track order.
type CutFunc func(
	ctx context.Context,
	sess *session.RecordingSession,
	onFinished func(cut.Result),
) (*cut.Report, error)

// Options configures the review screen. Only Review is required.
type Options struct {
	Review *review.Review
	Player Player
	Cut    CutFunc
	Save   func(times []audiotime.AudioTime) error
	Logger *slog.Logger
	Nudge  time.Duration
}

type (
	tickMsg   time.Time
	resultMsg struct {
		result cut.Result
	}
	cutDoneMsg struct {
		report *cut.Report
		err    error
	}
	savedMsg struct {
		err error
	}
)

// Model is the bubbletea model of the review screen.
type Model struct {
	review   *review.Review
	player   Player
	cutFn    CutFunc
	saveFn   func(times []audiotime.AudioTime) error
	logger   *slog.Logger
	events   chan tea.Msg
	done     chan struct{}
	cancel   context.CancelFunc
	report   *cut.Report
	err      error
	styles   styles
	keys     keymap
	status   string
	help     help.Model
	progress progress.Model
	nudge    time.Duration
	current  int
	playing  int
	width    int
	height   int
	cutCount int
	dragging bool
	cutting  bool
	aborting bool
}

// New returns the review screen for opts.Review.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	nudge := opts.Nudge
	if nudge <= 0 {
		nudge = defaultNudge
	}

	m := &Model{
		review:   opts.Review,
		player:   opts.Player,
		cutFn:    opts.Cut,
		saveFn:   opts.Save,
		logger:   logger,
		styles:   newStyles(),
		keys:     defaultKeymap,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		nudge:    nudge,
		playing:  -1,
		width:    defaultWidth,
		height:   defaultHeight,
	}

	m.progress.Width = defaultWidth - 4

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("setsplit · " + m.review.Session().Name)
}

// Report returns the outcome of the last cut started from the screen.
func (m *Model) Report() (*cut.Report, error) {
	return m.report, m.err
}

// Wait stops a cut still running after the screen was closed and blocks
// until it has returned.
func (m *Model) Wait() {
	if m.done == nil {
		return
	}

	if m.cancel != nil {
		m.cancel()
	}

	<-m.done
}

// Run shows the review screen until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err := p.Run()

	return err
}

func (m *Model) editor() *editor.Editor {
	return m.review.Editors()[m.current]
}

// plotRect is the area the plot of the current boundary is drawn in, in
// terminal cells.
func (m *Model) plotRect() editor.Rect {
	rows := m.height - headerLines - footerLines
	rows = max(minPlotRows, min(rows, maxPlotRows))

	return editor.NewRect(0, headerLines, float64(min(m.width, maxWidth)), float64(rows))
}
