package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/setsplit/internal/editor"
)

var levels = []rune("▁▂▃▄▅▆▇█")

const (
	cutRune      = '│'
	playbackRune = '┊'
)

type sample struct {
	t      float64
	v      float64
	before bool
}

// column is what one terminal column of the plot shows.
type column struct {
	height  int // in eighths of a row
	before  bool
	visible bool
}

// plotColumns reduces the envelope of e to one bar per column of rect.
// Columns outside the plot area are not visible.
func plotColumns(e *editor.Editor, rect editor.Rect) []column {
	before, after := e.Lines()

	samples := make([]sample, 0, len(before)+len(after))
	peak := 0.0

	for _, p := range before {
		samples = append(samples, sample{t: p.X, v: p.Y, before: true})
		peak = max(peak, p.Y)
	}

	for _, p := range after {
		samples = append(samples, sample{t: p.X, v: p.Y})
		peak = max(peak, p.Y)
	}

	cols := make([]column, int(rect.Width()))
	rows := int(rect.Height())

	begin, width := editor.PlotArea(rect)
	cut := e.CutTime().Seconds()

	next := 0

	for i := range cols {
		x := rect.Min.X + float64(i)
		if x+1 <= begin || x >= begin+width {
			continue
		}

		from := e.TimeAt(x, rect).Seconds()
		to := e.TimeAt(x+1, rect).Seconds()

		c := column{visible: true, before: (from+to)/2 < cut}

		v := -1.0

		for next < len(samples) && samples[next].t < to {
			if samples[next].t >= from {
				v = max(v, samples[next].v)
			}

			next++
		}

		// more columns than samples: repeat the previous sample
		if v < 0 && next > 0 {
			v = samples[next-1].v
		}

		if peak > 0 && v > 0 {
			c.height = int(math.Round(v / peak * float64(rows*8)))
		}

		cols[i] = c
	}

	return cols
}

// renderPlot draws the envelope of e with the cut and playback markers.
func (m *Model) renderPlot(e *editor.Editor, rect editor.Rect) string {
	cols := plotColumns(e, rect)
	rows := int(rect.Height())

	beforeStyle, afterStyle := m.styles.lineStyles(e)

	markerCol := int(e.XAt(e.CutTime(), rect) - rect.Min.X)

	playCol := -1
	if t, ok := e.PlaybackMarker(); ok {
		playCol = int(e.XAt(t, rect) - rect.Min.X)
	}

	var b strings.Builder

	for r := range rows {
		level := rows - 1 - r

		for i, c := range cols {
			switch {
			case i == markerCol:
				b.WriteString(m.styles.marker.Render(string(cutRune)))
				continue
			case i == playCol:
				b.WriteString(m.styles.playback.Render(string(playbackRune)))
				continue
			case !c.visible:
				b.WriteByte(' ')
				continue
			}

			filled := c.height - level*8

			var ch string

			switch {
			case filled <= 0:
				ch = " "
			case filled >= 8:
				ch = string(levels[7])
			default:
				ch = string(levels[filled-1])
			}

			style := afterStyle
			if c.before {
				style = beforeStyle
			}

			b.WriteString(style.Render(ch))
		}

		if r < rows-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func (s styles) lineStyles(e *editor.Editor) (before, after lipgloss.Style) {
	b, a := e.LineColors()

	pick := func(ls editor.LineStyle) lipgloss.Style {
		if ls == editor.Cut {
			return s.finished
		}

		return s.pending
	}

	return pick(b), pick(a)
}
