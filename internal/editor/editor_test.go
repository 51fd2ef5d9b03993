package editor

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/envelope"
	"github.com/ayoisaiah/setsplit/internal/song"
)

var (
	first  = song.Song{Title: "First", Number: 1, Length: 180 * time.Second}
	second = song.Song{Title: "Second", Number: 2, Length: 240 * time.Second}
	third  = song.Song{Title: "Third", Number: 3, Length: 60 * time.Second}
)

func secs(f float64) audiotime.AudioTime {
	return audiotime.FromSeconds(f)
}

// newEditor returns an editor for a boundary at 190s with an excerpt
// covering [185s, 195s).
func newEditor(before, after *song.Song) *Editor {
	volumes := make([]float64, 100)
	for i := range volumes {
		volumes[i] = float64(i%7) / 7
	}

	excerpt := envelope.NewExcerpt(secs(185), secs(195), volumes)

	return New(NamedExcerpt{
		Excerpt:    excerpt,
		SongBefore: before,
		SongAfter:  after,
	}, secs(190), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ptr[T any](v T) *T {
	return &v
}

var rect = NewRect(20, 40, 800, 200)

func TestLinesPartition(t *testing.T) {
	for _, cut := range []float64{184, 185, 187.35, 190, 194.9, 195, 200} {
		e := newEditor(&first, &second)
		e.SetCutTime(secs(cut))

		before, after := e.Lines()

		times := e.Excerpt().Excerpt.SampleTimes()
		volumes := e.Excerpt().Excerpt.VolumePlotData()

		assert.Len(t, append(before, after...), len(times), "cut %v", cut)

		for i, p := range append(before, after...) {
			assert.Equal(t, Point{X: times[i], Y: volumes[i]}, p)
		}

		for _, p := range before {
			assert.Less(t, p.X, cut)
		}

		for _, p := range after {
			assert.GreaterOrEqual(t, p.X, cut)
		}
	}
}

func TestTimeAtIsMonotonic(t *testing.T) {
	e := newEditor(&first, &second)

	prev := e.TimeAt(rect.Min.X-50, rect)

	for x := rect.Min.X - 50; x <= rect.Max.X+50; x += 0.5 {
		got := e.TimeAt(x, rect)
		assert.False(t, got.Before(prev), "TimeAt(%v) = %v went backwards from %v", x, got, prev)

		prev = got
	}
}

func TestTimeAtEdges(t *testing.T) {
	e := newEditor(&first, &second)

	begin, _ := PlotArea(rect)

	assert.InDelta(t, 55.52, begin, 1e-9)
	assert.Equal(t, secs(185), e.TimeAt(begin, rect))
	assert.Equal(t, secs(195), e.TimeAt(rect.Max.X, rect))
	assert.Equal(t, secs(185), e.TimeAt(rect.Min.X, rect))
}

func TestXAtInvertsTimeAt(t *testing.T) {
	e := newEditor(&first, &second)

	for _, f := range []float64{185, 186.25, 190, 194.5, 195} {
		x := e.XAt(secs(f), rect)

		got := e.TimeAt(x, rect)
		assert.InDelta(t, f, got.Seconds(), 1e-6)
	}
}

func TestDragToRightEdge(t *testing.T) {
	e := newEditor(&first, &second)

	moved := e.Interact(ptr(rect.Max.X), nil, rect)

	assert.True(t, moved)
	assert.Equal(t, secs(195), e.CutTime())
}

func TestInteract(t *testing.T) {
	begin, width := PlotArea(rect)

	cases := []struct {
		Name    string
		Pointer *float64
		Marker  *float64
		Want    audiotime.AudioTime
		Moved   bool
	}{
		{
			Name:  "no input",
			Want:  secs(190),
			Moved: false,
		},
		{
			Name:    "pointer only",
			Pointer: ptr(begin + width/4),
			Want:    secs(187.5),
			Moved:   true,
		},
		{
			Name:   "marker only",
			Marker: ptr(begin + width*3/4),
			Want:   secs(192.5),
			Moved:  true,
		},
		{
			Name:    "pointer wins over marker",
			Pointer: ptr(begin),
			Marker:  ptr(begin + width),
			Want:    secs(185),
			Moved:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			e := newEditor(&first, &second)

			assert.Equal(t, tc.Moved, e.Interact(tc.Pointer, tc.Marker, rect))
			assert.InDelta(t, tc.Want.Seconds(), e.CutTime().Seconds(), 1e-6)
		})
	}
}

func TestMarkFinished(t *testing.T) {
	e := newEditor(&first, &second)

	assert.Equal(t, Pending, e.State())

	e.MarkFinished(third)
	assert.False(t, e.FinishedBefore())
	assert.False(t, e.FinishedAfter())

	e.MarkFinished(second)
	assert.False(t, e.FinishedBefore())
	assert.True(t, e.FinishedAfter())
	assert.Equal(t, PartiallyFinished, e.State())

	e.MarkFinished(second)
	assert.True(t, e.FinishedAfter(), "marking twice must not toggle")

	e.MarkFinished(first)
	assert.True(t, e.FinishedBefore())
	assert.Equal(t, FullyFinished, e.State())

	before, after := e.LineColors()
	assert.Equal(t, Cut, before)
	assert.Equal(t, Cut, after)
}

func TestMarkFinishedSameSongBothSides(t *testing.T) {
	e := newEditor(&first, &first)

	e.MarkFinished(first)

	assert.True(t, e.FinishedBefore())
	assert.True(t, e.FinishedAfter())
}

func TestStateAtRecordingEdges(t *testing.T) {
	start := newEditor(nil, &first)
	assert.Equal(t, Pending, start.State())

	start.MarkFinished(first)
	assert.Equal(t, FullyFinished, start.State())

	before, after := start.LineColors()
	assert.Equal(t, Uncut, before)
	assert.Equal(t, Cut, after)

	end := newEditor(&third, nil)
	end.MarkFinished(third)
	assert.Equal(t, FullyFinished, end.State())
}

func TestPlaybackMarker(t *testing.T) {
	e := newEditor(&first, &second)

	_, shown := e.PlaybackMarker()
	assert.False(t, shown)

	e.ShowPlaybackMarker(secs(188))

	at, shown := e.PlaybackMarker()
	assert.True(t, shown)
	assert.Equal(t, secs(188), at)
	assert.Equal(t, secs(190), e.CutTime())

	e.HidePlaybackMarker()

	_, shown = e.PlaybackMarker()
	assert.False(t, shown)
}

func TestNudge(t *testing.T) {
	e := newEditor(&first, &second)

	e.Nudge(100 * time.Millisecond)
	assert.Equal(t, secs(190.1), e.CutTime())

	e.Nudge(-time.Minute)
	assert.Equal(t, secs(185), e.CutTime())

	e.Nudge(time.Hour)
	assert.Equal(t, secs(195), e.CutTime())
}

func TestConcurrentUpdates(t *testing.T) {
	e := newEditor(&first, &second)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if i%2 == 0 {
				e.MarkFinished(first)
			} else {
				e.MarkFinished(second)
			}

			e.SetCutTime(secs(186 + float64(i%5)))
			_, _ = e.Lines()
		}()
	}

	wg.Wait()

	assert.Equal(t, FullyFinished, e.State())
}
