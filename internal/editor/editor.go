// Package editor holds the state needed to review and adjust one cut point
// independent of how it is drawn
package editor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/envelope"
	"github.com/ayoisaiah/setsplit/internal/song"
)

// State is how far cutting has progressed on either side of a boundary.
type State int

const (
	Pending State = iota
	PartiallyFinished
	FullyFinished
)

func (s State) String() string {
	switch s {
	case PartiallyFinished:
		return "partially finished"
	case FullyFinished:
		return "finished"
	default:
		return "pending"
	}
}

// LineStyle tells a renderer which color a half of the envelope takes.
type LineStyle int

const (
	Uncut LineStyle = iota
	Cut
)

// NamedExcerpt is the envelope around a boundary together with the tracks
// on each side of it. A boundary at the start or end of the recording lacks
// one of them.
type NamedExcerpt struct {
	Excerpt    envelope.Envelope
	SongBefore *song.Song
	SongAfter  *song.Song
}

// Editor tracks the cut time of one boundary and whether the tracks on
// either side of it have been extracted. Its methods are safe for
// concurrent use.
type Editor struct {
	logger         *slog.Logger
	playback       *audiotime.AudioTime
	excerpt        NamedExcerpt
	cutTime        audiotime.AudioTime
	mu             sync.Mutex
	finishedBefore bool
	finishedAfter  bool
}

// New returns an editor for excerpt with an initial cut time estimate.
func New(
	excerpt NamedExcerpt,
	cutTime audiotime.AudioTime,
	logger *slog.Logger,
) *Editor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Editor{
		excerpt: excerpt,
		cutTime: cutTime,
		logger:  logger,
	}
}

func (e *Editor) Excerpt() NamedExcerpt {
	return e.excerpt
}

// Lines splits the envelope at the cut time. Samples earlier than the cut
// go before it; the rest go after. Order is preserved within each half.
func (e *Editor) Lines() (before, after []Point) {
	e.mu.Lock()
	cut := e.cutTime.Seconds()
	e.mu.Unlock()

	times := e.excerpt.Excerpt.SampleTimes()
	volumes := e.excerpt.Excerpt.VolumePlotData()

	for i, t := range times {
		if i >= len(volumes) {
			break
		}

		p := Point{X: t, Y: volumes[i]}

		if t < cut {
			before = append(before, p)
		} else {
			after = append(after, p)
		}
	}

	return before, after
}

// TimeAt returns the recording time under the horizontal display position
// pointerX of a plot drawn in rect.
func (e *Editor) TimeAt(pointerX float64, rect Rect) audiotime.AudioTime {
	return e.excerpt.Excerpt.AbsoluteTimeByRelativeProgress(
		Progress(pointerX, rect),
	)
}

// XAt is the inverse of TimeAt: the display position of t within rect.
func (e *Editor) XAt(t audiotime.AudioTime, rect Rect) float64 {
	start := e.excerpt.Excerpt.AbsoluteTimeByRelativeProgress(0)
	end := e.excerpt.Excerpt.AbsoluteTimeByRelativeProgress(1)

	begin, width := PlotArea(rect)

	span := end.Sub(start)
	if span <= 0 {
		return begin
	}

	progress := float64(t.Sub(start)) / float64(span)

	return begin + max(0, min(progress, 1))*width
}

// SetCutTime replaces the cut time.
func (e *Editor) SetCutTime(t audiotime.AudioTime) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.setCutTime(t)
}

func (e *Editor) setCutTime(t audiotime.AudioTime) {
	e.logger.Debug("cut time changed",
		slog.String("boundary", e.name()),
		slog.String("from", e.cutTime.SecondsString()),
		slog.String("to", t.SecondsString()),
	)

	e.cutTime = t
}

// Interact applies one update cycle of user input to the plot in rect.
// pointerX is the position of an active drag and markerX a requested marker
// position; either may be nil. The pointer wins when both are present.
// It reports whether the cut time was moved.
func (e *Editor) Interact(pointerX, markerX *float64, rect Rect) bool {
	x := pointerX
	if x == nil {
		x = markerX
	}

	if x == nil {
		return false
	}

	t := e.TimeAt(*x, rect)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.setCutTime(t)

	return true
}

// Nudge moves the cut time by d, keeping it within the excerpt.
func (e *Editor) Nudge(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.excerpt.Excerpt.AbsoluteTimeByRelativeProgress(0)
	end := e.excerpt.Excerpt.AbsoluteTimeByRelativeProgress(1)

	t := e.cutTime.Add(d)

	switch {
	case t.Before(start):
		t = start
	case t.After(end):
		t = end
	}

	e.setCutTime(t)
}

// MarkFinished records that s has been extracted. It matches the track
// before and the track after the boundary independently. Flags never go
// back to false.
func (e *Editor) MarkFinished(s song.Song) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b := e.excerpt.SongBefore; b != nil && *b == s {
		e.finishedBefore = true
	}

	if a := e.excerpt.SongAfter; a != nil && *a == s {
		e.finishedAfter = true
	}

	e.logger.Debug("track finished",
		slog.String("boundary", e.name()),
		slog.String("song", s.String()),
		slog.String("state", e.state().String()),
	)
}

// ShowPlaybackMarker displays a secondary marker at t. It never affects the
// cut time.
func (e *Editor) ShowPlaybackMarker(t audiotime.AudioTime) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.playback = &t
}

func (e *Editor) HidePlaybackMarker() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.playback = nil
}

// PlaybackMarker returns the marker position and whether it is shown.
func (e *Editor) PlaybackMarker() (audiotime.AudioTime, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.playback == nil {
		return audiotime.Zero, false
	}

	return *e.playback, true
}

func (e *Editor) CutTime() audiotime.AudioTime {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cutTime
}

func (e *Editor) FinishedBefore() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.finishedBefore
}

func (e *Editor) FinishedAfter() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.finishedAfter
}

// State summarizes the finished flags. A missing neighbor counts as
// finished once the other side is.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state()
}

func (e *Editor) state() State {
	before := e.finishedBefore || e.excerpt.SongBefore == nil
	after := e.finishedAfter || e.excerpt.SongAfter == nil

	switch {
	case !e.finishedBefore && !e.finishedAfter:
		return Pending
	case before && after:
		return FullyFinished
	default:
		return PartiallyFinished
	}
}

// LineColors returns the style of the halves returned by Lines.
func (e *Editor) LineColors() (before, after LineStyle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return lineStyle(e.finishedBefore), lineStyle(e.finishedAfter)
}

func lineStyle(finished bool) LineStyle {
	if finished {
		return Cut
	}

	return Uncut
}

// name identifies the boundary in log output.
func (e *Editor) name() string {
	var before, after string

	if e.excerpt.SongBefore != nil {
		before = e.excerpt.SongBefore.Title
	}

	if e.excerpt.SongAfter != nil {
		after = e.excerpt.SongAfter.Title
	}

	return before + " | " + after
}
