package cut

import (
	"fmt"
	"time"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/internal/song"
)

const (
	Lengths    = "lengths"
	Timestamps = "timestamps"
)

var (
	errUnknownStrategy = &apperr.Error{
		Message: "unknown cutting strategy: %q (must be lengths or timestamps)",
	}

	errTooFewTimestamps = &apperr.Error{
		Message: "cutting by timestamps needs %d timestamps for %d tracks, got %d",
	}

	errUnorderedTimestamps = &apperr.Error{
		Message: "timestamp %d (%s) does not come after timestamp %d (%s)",
	}
)

// Window is the half-open range [Start, End) of the recording that belongs
// to one track.
type Window struct {
	Song  song.Song
	Start audiotime.AudioTime
	End   audiotime.AudioTime
	Index int
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) String() string {
	return fmt.Sprintf(
		"%s [%ss–%ss)",
		w.Song,
		w.Start.SecondsString(),
		w.End.SecondsString(),
	)
}

// Strategy decides where each track of a session begins and ends.
type Strategy interface {
	Windows(sess *session.RecordingSession) ([]Window, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(sess *session.RecordingSession) ([]Window, error)

func (f StrategyFunc) Windows(
	sess *session.RecordingSession,
) ([]Window, error) {
	return f(sess)
}

// AccumulatedLengths walks the tracks in order starting at the first
// timestamp (plus offset), each window ending where the track length runs
// out and the next one starting there.
func AccumulatedLengths(offset time.Duration) Strategy {
	return StrategyFunc(func(sess *session.RecordingSession) ([]Window, error) {
		if err := sess.Validate(); err != nil {
			return nil, err
		}

		windows := make([]Window, len(sess.Songs))

		start := sess.Start().Add(offset)

		for i, s := range sess.Songs {
			end := start.Add(s.Length)

			windows[i] = Window{
				Index: i,
				Song:  s,
				Start: start,
				End:   end,
			}

			start = end
		}

		return windows, nil
	})
}

// TimestampPairs cuts track i between timestamps i and i+1, both shifted by
// offset. Track lengths are ignored.
func TimestampPairs(offset time.Duration) Strategy {
	return StrategyFunc(func(sess *session.RecordingSession) ([]Window, error) {
		if err := sess.Validate(); err != nil {
			return nil, err
		}

		ts := sess.Timestamps

		if len(ts) < len(sess.Songs)+1 {
			return nil, session.ErrInvalidSession.Wrap(
				errTooFewTimestamps.Fmt(len(sess.Songs)+1, len(sess.Songs), len(ts)),
			)
		}

		windows := make([]Window, len(sess.Songs))

		for i, s := range sess.Songs {
			if !ts[i+1].After(ts[i]) {
				return nil, session.ErrInvalidSession.Wrap(
					errUnorderedTimestamps.Fmt(i+1, ts[i+1], i, ts[i]),
				)
			}

			windows[i] = Window{
				Index: i,
				Song:  s,
				Start: ts[i].Add(offset),
				End:   ts[i+1].Add(offset),
			}
		}

		return windows, nil
	})
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string, offset time.Duration) (Strategy, error) {
	switch name {
	case Lengths, "":
		return AccumulatedLengths(offset), nil
	case Timestamps:
		return TimestampPairs(offset), nil
	default:
		return nil, errUnknownStrategy.Fmt(name)
	}
}
