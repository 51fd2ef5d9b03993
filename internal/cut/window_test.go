package cut

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/internal/song"
)

func secs(f float64) audiotime.AudioTime {
	return audiotime.FromSeconds(f)
}

func newSession(start float64, lengths ...time.Duration) *session.RecordingSession {
	sess := &session.RecordingSession{
		Name:       "test",
		BufferFile: "/rec/set.flac",
		Timestamps: []audiotime.AudioTime{secs(start)},
	}

	for i, l := range lengths {
		sess.Songs = append(sess.Songs, song.Song{
			Artist: "Band",
			Album:  "Live",
			Title:  "Track",
			Number: i + 1,
			Length: l,
		})
	}

	return sess
}

func TestAccumulatedLengths(t *testing.T) {
	sess := newSession(10, 180*time.Second, 240*time.Second)

	windows, err := AccumulatedLengths(0).Windows(sess)
	if err != nil {
		t.Fatal(err)
	}

	if assert.Len(t, windows, 2) {
		assert.Equal(t, secs(10), windows[0].Start)
		assert.Equal(t, secs(190), windows[0].End)
		assert.Equal(t, secs(190), windows[1].Start)
		assert.Equal(t, secs(430), windows[1].End)
		assert.Equal(t, 1, windows[1].Index)
	}
}

func TestAccumulatedLengthsAreContiguous(t *testing.T) {
	lengths := []time.Duration{
		61500 * time.Millisecond,
		time.Microsecond,
		0,
		3*time.Minute + 333333*time.Microsecond,
		45 * time.Second,
	}

	sess := newSession(12.5, lengths...)

	windows, err := AccumulatedLengths(0).Windows(sess)
	if err != nil {
		t.Fatal(err)
	}

	var total time.Duration

	for i, w := range windows {
		assert.Equal(t, lengths[i], w.Duration())

		if i > 0 {
			assert.Equal(t, windows[i-1].End, w.Start, "gap before window %d", i)
		}

		total += w.Duration()
	}

	assert.Equal(t, secs(12.5), windows[0].Start)
	assert.Equal(t, sess.TotalLength(), total)
	assert.Equal(t, windows[len(windows)-1].End.Sub(windows[0].Start), total)
}

func TestAccumulatedLengthsOffset(t *testing.T) {
	sess := newSession(10, 5*time.Second)

	windows, err := AccumulatedLengths(1600 * time.Millisecond).Windows(sess)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, secs(11.6), windows[0].Start)
	assert.Equal(t, secs(16.6), windows[0].End)
}

func TestTimestampPairs(t *testing.T) {
	sess := newSession(0, time.Second, time.Second)
	sess.Timestamps = []audiotime.AudioTime{secs(5), secs(65), secs(130)}

	windows, err := TimestampPairs(time.Second).Windows(sess)
	if err != nil {
		t.Fatal(err)
	}

	if assert.Len(t, windows, 2) {
		assert.Equal(t, secs(6), windows[0].Start)
		assert.Equal(t, secs(66), windows[0].End)
		assert.Equal(t, secs(66), windows[1].Start)
		assert.Equal(t, secs(131), windows[1].End)
	}
}

func TestTimestampPairsRejects(t *testing.T) {
	cases := []struct {
		Name       string
		Timestamps []audiotime.AudioTime
		Cause      error
	}{
		{
			Name:       "too few timestamps",
			Timestamps: []audiotime.AudioTime{secs(0), secs(10)},
			Cause:      errTooFewTimestamps,
		},
		{
			Name:       "unordered timestamps",
			Timestamps: []audiotime.AudioTime{secs(0), secs(10), secs(10)},
			Cause:      errUnorderedTimestamps,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			sess := newSession(0, time.Second, time.Second)
			sess.Timestamps = tc.Timestamps

			_, err := TimestampPairs(0).Windows(sess)
			assert.True(t, errors.Is(err, session.ErrInvalidSession), "got %v", err)
			assert.True(t, errors.Is(err, tc.Cause), "got %v", err)
		})
	}
}

func TestStrategiesRejectInvalidSessions(t *testing.T) {
	for _, name := range []string{Lengths, Timestamps} {
		t.Run(name, func(t *testing.T) {
			s, err := NewStrategy(name, 0)
			if err != nil {
				t.Fatal(err)
			}

			_, err = s.Windows(newSession(10))
			assert.True(t, errors.Is(err, session.ErrInvalidSession), "got %v", err)
		})
	}
}

func TestNewStrategyUnknown(t *testing.T) {
	_, err := NewStrategy("silence", 0)
	assert.True(t, errors.Is(err, errUnknownStrategy), "got %v", err)
}
