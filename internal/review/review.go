// Package review builds one cut point editor per track boundary of a
// session and writes the refined boundaries back into it
package review

import (
	"log/slog"
	"time"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/editor"
	"github.com/ayoisaiah/setsplit/internal/envelope"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/internal/song"
)

const DefaultWindow = 10 * time.Second

var (
	errExcerpt = &apperr.Error{
		Message: "unable to load the excerpt around %s",
	}

	errStaleReview = &apperr.Error{
		Message: "saved review has %d boundaries but the session has %d",
	}

	errUnorderedBoundaries = &apperr.Error{
		Message: "boundary %d (%s) must come after boundary %d (%s)",
	}
)

// ExcerptSource renders the envelope of a range of the recording.
type ExcerptSource interface {
	Excerpt(start, end audiotime.AudioTime) (*envelope.Excerpt, error)
}

// Review holds an editor for every boundary of a session: the start of the
// first track, every boundary between two tracks and the end of the last
// track.
type Review struct {
	session *session.RecordingSession
	logger  *slog.Logger
	editors []*editor.Editor
}

// Build computes the boundaries of sess with strategy and loads an excerpt
// of length window centred on each. The session is copied.
func Build(
	sess *session.RecordingSession,
	strategy cut.Strategy,
	source ExcerptSource,
	window time.Duration,
	logger *slog.Logger,
) (*Review, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if window <= 0 {
		window = DefaultWindow
	}

	windows, err := strategy.Windows(sess)
	if err != nil {
		return nil, err
	}

	r := &Review{
		session: sess.Clone(),
		logger:  logger,
		editors: make([]*editor.Editor, len(windows)+1),
	}

	for i := range r.editors {
		var (
			at            audiotime.AudioTime
			before, after *song.Song
		)

		if i < len(windows) {
			at = windows[i].Start
			after = &r.session.Songs[i]
		} else {
			at = windows[i-1].End
		}

		if i > 0 {
			before = &r.session.Songs[i-1]
		}

		excerpt, err := source.Excerpt(
			at.Add(-window/2),
			at.Add(window/2),
		)
		if err != nil {
			return nil, errExcerpt.Fmt(at).Wrap(err)
		}

		r.editors[i] = editor.New(editor.NamedExcerpt{
			Excerpt:    excerpt,
			SongBefore: before,
			SongAfter:  after,
		}, at, logger)
	}

	logger.Debug("review ready",
		slog.String("session", sess.Name),
		slog.Int("boundaries", len(r.editors)),
	)

	return r, nil
}

// Session returns the reviewed session. Apply updates it in place.
func (r *Review) Session() *session.RecordingSession {
	return r.session
}

func (r *Review) Editors() []*editor.Editor {
	return r.editors
}

// MarkFinished marks s as extracted on every boundary it borders.
func (r *Review) MarkFinished(s song.Song) {
	for _, e := range r.editors {
		e.MarkFinished(s)
	}
}

// CutTimes returns the current cut time of every boundary in order.
func (r *Review) CutTimes() []audiotime.AudioTime {
	times := make([]audiotime.AudioTime, len(r.editors))

	for i, e := range r.editors {
		times[i] = e.CutTime()
	}

	return times
}

// Restore sets the cut times saved by an earlier review.
func (r *Review) Restore(times []audiotime.AudioTime) error {
	if len(times) != len(r.editors) {
		return errStaleReview.Fmt(len(times), len(r.editors))
	}

	for i, e := range r.editors {
		e.SetCutTime(times[i])
	}

	return nil
}

// Apply writes the cut times into the session: they become its timestamps
// and every track's length becomes the distance between its two
// boundaries. Boundaries must be strictly increasing.
func (r *Review) Apply() (*session.RecordingSession, error) {
	// editors hold pointers into Songs, so the session is updated in place
	// and finished tracks keep matching their boundaries
	if err := apply(r.session, r.CutTimes()); err != nil {
		return nil, err
	}

	r.logger.Info("review applied",
		slog.String("session", r.session.Name),
		slog.Any("boundaries", r.session.Timestamps),
	)

	return r.session, nil
}

// ApplyTimes applies saved cut times to a copy of sess without opening it
// for review.
func ApplyTimes(
	sess *session.RecordingSession,
	times []audiotime.AudioTime,
) (*session.RecordingSession, error) {
	if len(times) != len(sess.Songs)+1 {
		return nil, errStaleReview.Fmt(len(times), len(sess.Songs)+1)
	}

	c := sess.Clone()

	if err := apply(c, times); err != nil {
		return nil, err
	}

	return c, nil
}

// apply truncates the cut times to whole microseconds so both cutting
// strategies produce the same windows from the result.
func apply(sess *session.RecordingSession, times []audiotime.AudioTime) error {
	truncated := make([]audiotime.AudioTime, len(times))

	for i, t := range times {
		truncated[i] = audiotime.New(t.Duration().Truncate(time.Microsecond))

		if i > 0 && !truncated[i].After(truncated[i-1]) {
			return session.ErrInvalidSession.Wrap(
				errUnorderedBoundaries.Fmt(i, truncated[i], i-1, truncated[i-1]),
			)
		}
	}

	sess.Timestamps = truncated

	for i := range sess.Songs {
		sess.Songs[i].Length = truncated[i+1].Sub(truncated[i])
	}

	return nil
}
