// Package cut computes track windows for a recording session and extracts
// each window into its own file
package cut

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/extract"
	"github.com/ayoisaiah/setsplit/internal/osutil"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/internal/song"
)

const (
	DefaultOutputDir = "music"
	maxConcurrency   = 16
)

var (
	errCutTrack = &apperr.Error{
		Message: "cutting %s",
	}

	errCreateDir = &apperr.Error{
		Message: "unable to create %s",
	}

	errDuplicateDest = &apperr.Error{
		Message: "tracks %d and %d would both be written to %s",
	}
)

// Publisher copies a finished track somewhere else and returns its new
// location.
type Publisher interface {
	Publish(ctx context.Context, s song.Song, path string) (string, error)
}

// Result is the outcome of extracting one window.
type Result struct {
	Err        error         `json:"-"`
	PublishErr error         `json:"-"`
	Dest       string        `json:"dest"`
	URL        string        `json:"url,omitempty"`
	Window     Window        `json:"window"`
	Elapsed    time.Duration `json:"elapsed"`
}

// OK reports whether the track was extracted.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report lists the results of one call to CutSession in track order.
type Report struct {
	Session string
	Results []Result
}

// Failed returns the tracks whose extraction failed.
func (r *Report) Failed() []Result {
	var failed []Result

	for _, v := range r.Results {
		if !v.OK() {
			failed = append(failed, v)
		}
	}

	return failed
}

// Succeeded returns the number of tracks that were extracted.
func (r *Report) Succeeded() int {
	return len(r.Results) - len(r.Failed())
}

// Option configures a Cutter.
type Option func(*Cutter)

// Cutter splits a recording session into one file per track.
type Cutter struct {
	extractor   extract.Extractor
	strategy    Strategy
	publisher   Publisher
	logger      *slog.Logger
	onFinished  func(Result)
	root        string
	ext         string
	concurrency int
}

// WithStrategy sets how track windows are computed. Defaults to
// AccumulatedLengths with no offset.
func WithStrategy(s Strategy) Option {
	return func(c *Cutter) {
		c.strategy = s
	}
}

// WithOutputDir sets the directory tracks are written under.
func WithOutputDir(dir string) Option {
	return func(c *Cutter) {
		c.root = dir
	}
}

// WithExtension sets the extension of extracted tracks. The source
// recording's extension is used when ext is empty.
func WithExtension(ext string) Option {
	return func(c *Cutter) {
		c.ext = ext
	}
}

// WithConcurrency sets how many extractions may run at once.
func WithConcurrency(n int) Option {
	return func(c *Cutter) {
		c.concurrency = max(1, min(n, maxConcurrency))
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cutter) {
		c.logger = l
	}
}

func WithPublisher(p Publisher) Option {
	return func(c *Cutter) {
		c.publisher = p
	}
}

// OnFinished registers a callback invoked once per attempted track. Calls
// are never concurrent and always arrive in track order.
func OnFinished(fn func(Result)) Option {
	return func(c *Cutter) {
		c.onFinished = fn
	}
}

// New returns a Cutter that extracts windows with extractor.
func New(extractor extract.Extractor, opts ...Option) *Cutter {
	c := &Cutter{
		extractor:   extractor,
		strategy:    AccumulatedLengths(0),
		logger:      slog.Default(),
		root:        DefaultOutputDir,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Windows returns the windows sess would be cut into along with each
// track's destination, without extracting anything.
func (c *Cutter) Windows(
	sess *session.RecordingSession,
) ([]Window, []string, error) {
	windows, err := c.strategy.Windows(sess)
	if err != nil {
		return nil, nil, err
	}

	ext := c.extension(sess)

	dests := make([]string, len(windows))

	// case-insensitive file systems treat these as one file
	seen := make(map[string]int, len(windows))

	for i := range windows {
		dests[i] = windows[i].Song.TargetFile(c.root, ext)

		key := strings.ToLower(filepath.Clean(dests[i]))

		if j, ok := seen[key]; ok {
			return nil, nil, session.ErrInvalidSession.Wrap(
				errDuplicateDest.Fmt(j+1, i+1, dests[i]),
			)
		}

		seen[key] = i
	}

	return windows, dests, nil
}

// CutSession extracts every track of sess. The session must not be
// modified while it is being cut.
//
// An invalid session is rejected before any extraction starts. A setup
// failure (the destination directory cannot be created or the extractor
// cannot be started) stops the whole session and is returned. A track
// whose extraction fails is logged and recorded in the report, and cutting
// moves on to the next track.
func (c *Cutter) CutSession(
	ctx context.Context,
	sess *session.RecordingSession,
) (*Report, error) {
	windows, dests, err := c.Windows(sess)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "cutting session",
		slog.String("session", sess.Name),
		slog.String("source", sess.BufferFile),
		slog.Int("tracks", len(windows)),
		slog.Int("concurrency", c.concurrency),
	)

	seq := newSequencer(len(windows), c.onFinished)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range windows {
		if gctx.Err() != nil {
			break
		}

		w, dest := windows[i], dests[i]

		g.Go(func() error {
			// an earlier track may have stopped the session while this one
			// was waiting for a slot
			if gctx.Err() != nil {
				return nil
			}

			res, err := c.cutWindow(gctx, sess.BufferFile, w, dest)
			if err != nil {
				return err
			}

			seq.done(w.Index, res)

			return nil
		})
	}

	err = g.Wait()

	report := &Report{
		Session: sess.Name,
		Results: seq.results(),
	}

	if err != nil {
		return report, err
	}

	// cancelled before every window was launched
	if err := ctx.Err(); err != nil {
		return report, err
	}

	return report, nil
}

// cutWindow returns an error only when the session must stop. Extraction
// failures are reported through the result instead.
func (c *Cutter) cutWindow(
	ctx context.Context,
	source string,
	w Window,
	dest string,
) (Result, error) {
	logger := c.logger.With(
		slog.Int("track", w.Song.Number),
		slog.String("song", w.Song.String()),
		slog.String("start", w.Start.SecondsString()),
		slog.String("end", w.End.SecondsString()),
		slog.String("dest", dest),
	)

	res := Result{
		Window: w,
		Dest:   dest,
	}

	err := os.MkdirAll(filepath.Dir(dest), osutil.DirPermission)
	if err != nil {
		err = extract.ErrSetup.Wrap(errCreateDir.Fmt(filepath.Dir(dest)).Wrap(err))

		logger.ErrorContext(ctx, "track setup failed", slog.Any("error", err))

		return res, errCutTrack.Fmt(w).Wrap(err)
	}

	started := time.Now()

	err = c.extractor.Extract(ctx, extract.Job{
		Source:   source,
		Dest:     dest,
		Start:    w.Start,
		Duration: w.Duration(),
	})

	res.Elapsed = time.Since(started)

	switch {
	case err == nil:
	case errors.Is(err, extract.ErrExtraction):
		res.Err = errCutTrack.Fmt(w).Wrap(err)

		logger.ErrorContext(ctx, "track extraction failed",
			slog.Any("error", err),
		)

		return res, nil
	default:
		logger.ErrorContext(ctx, "cutting aborted", slog.Any("error", err))

		return res, errCutTrack.Fmt(w).Wrap(err)
	}

	logger.InfoContext(ctx, "track extracted",
		slog.Duration("elapsed", res.Elapsed),
	)

	if c.publisher != nil {
		res.URL, res.PublishErr = c.publisher.Publish(ctx, w.Song, dest)
		if res.PublishErr != nil {
			logger.WarnContext(ctx, "track upload failed",
				slog.Any("error", res.PublishErr),
			)
		}
	}

	return res, nil
}

func (c *Cutter) extension(sess *session.RecordingSession) string {
	if c.ext != "" {
		return c.ext
	}

	return filepath.Ext(sess.BufferFile)
}

// sequencer hands out results in track order however they complete.
type sequencer struct {
	fn   func(Result)
	buf  []*Result
	out  []Result
	mu   sync.Mutex
	next int
}

func newSequencer(n int, fn func(Result)) *sequencer {
	return &sequencer{
		fn:  fn,
		buf: make([]*Result, n),
	}
}

func (s *sequencer) done(i int, r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf[i] = &r

	for s.next < len(s.buf) && s.buf[s.next] != nil {
		res := *s.buf[s.next]
		s.out = append(s.out, res)
		s.next++

		if s.fn != nil {
			s.fn(res)
		}
	}
}

// results returns the contiguous run of finished tracks from the first
// one, followed by any that finished out of order before cutting stopped.
func (s *sequencer) results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]Result(nil), s.out...)

	for i := s.next; i < len(s.buf); i++ {
		if s.buf[i] != nil {
			out = append(out, *s.buf[i])
		}
	}

	return out
}
