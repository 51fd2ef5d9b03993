package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/extract"
	"github.com/ayoisaiah/setsplit/internal/models"
	"github.com/ayoisaiah/setsplit/internal/publish"
	"github.com/ayoisaiah/setsplit/internal/review"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/report"
	"github.com/ayoisaiah/setsplit/store"
)

var errNoReview = &apperr.Error{
	Message: "%s has not been reviewed yet: run 'setsplit review' first",
}

// loadSession reads the session file at path and picks the strategy its
// boundaries are computed with. A reviewed session carries its boundaries
// in its track lengths.
func (e *env) loadSession(
	path string,
	reviewed bool,
) (*session.RecordingSession, cut.Strategy, error) {
	sess, err := session.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if !reviewed {
		strategy, err := cut.NewStrategy(e.cfg.Cutting.Strategy, e.cfg.Cutting.Offset)
		if err != nil {
			return nil, nil, err
		}

		return sess, strategy, nil
	}

	saved, err := e.db.GetReview(sess.Name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, errNoReview.Fmt(sess.Name)
	}

	if err != nil {
		return nil, nil, err
	}

	sess, err = review.ApplyTimes(sess, saved.CutTimes)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Info("using reviewed boundaries",
		slog.String("session", sess.Name),
		slog.Time("reviewed_at", saved.UpdatedAt),
	)

	return sess, cut.AccumulatedLengths(0), nil
}

// newCutter returns a cutter configured from the config file and flags.
// The returned closer releases the upload client, if any.
func (e *env) newCutter(
	ctx context.Context,
	strategy cut.Strategy,
	onFinished func(cut.Result),
) (*cut.Cutter, io.Closer, error) {
	ffmpeg, err := extract.NewFFmpeg(
		e.cfg.Extractor.Bin,
		e.cfg.Extractor.Args,
		nil,
		e.logger,
	)
	if err != nil {
		return nil, nil, err
	}

	opts := []cut.Option{
		cut.WithStrategy(strategy),
		cut.WithOutputDir(e.cfg.Output.Dir),
		cut.WithExtension(e.cfg.Output.Ext),
		cut.WithConcurrency(e.cfg.Cutting.Concurrency),
		cut.WithLogger(e.logger),
		cut.OnFinished(onFinished),
	}

	var closer io.Closer = io.NopCloser(nil)

	if e.cfg.Upload.Enabled {
		gcs, err := publish.NewGCS(ctx, publish.Options{
			Bucket:          e.cfg.Upload.Bucket,
			Prefix:          e.cfg.Upload.Prefix,
			CredentialsFile: e.cfg.Upload.CredentialsFile,
		}, e.logger)
		if err != nil {
			return nil, nil, err
		}

		opts = append(opts, cut.WithPublisher(gcs))
		closer = gcs
	}

	return cut.New(ffmpeg, opts...), closer, nil
}

// record saves the outcome of every attempted track to the history.
func (e *env) record(rep *cut.Report) {
	extractions := make([]models.Extraction, 0, len(rep.Results))

	for _, r := range rep.Results {
		x := models.Extraction{
			Session: rep.Session,
			Dest:    r.Dest,
			URL:     r.URL,
			Song:    r.Window.Song,
			Start:   r.Window.Start,
			End:     r.Window.End,
			Elapsed: r.Elapsed,
		}

		if r.Err != nil {
			x.Error = r.Err.Error()
		}

		extractions = append(extractions, x)
	}

	err := e.db.SaveExtractions(extractions)
	if err != nil {
		e.logger.Error("unable to save history", slog.Any("error", err))
		pterm.Warning.Printfln("The history of this run could not be saved: %s", err)
	}
}

// finish reports a completed run and turns failed tracks into an error.
func (e *env) finish(rep *cut.Report) error {
	report.Summary(os.Stdout, rep)

	e.notifier.SessionCut(rep)

	if failed := len(rep.Failed()); failed > 0 {
		return ErrTracksFailed.Fmt(failed, len(rep.Results))
	}

	return nil
}

// confirm asks whether n tracks should be cut.
func confirm(n int) (bool, error) {
	var ok bool

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Cut %d tracks?", n)).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()

	return ok, err
}

// cutAction handles the cut command which splits the recording of a
// session into tracks.
func cutAction(ctx *cli.Context) error {
	path, err := sessionArg(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	sess, strategy, err := e.loadSession(path, e.cfg.CLI.Reviewed)
	if err != nil {
		return err
	}

	cutter, closer, err := e.newCutter(ctx.Context, strategy, report.Track)
	if err != nil {
		return err
	}

	defer closer.Close()

	windows, dests, err := cutter.Windows(sess)
	if err != nil {
		return err
	}

	printWindows(os.Stdout, windows, dests)

	// scripts cannot answer the prompt
	if !e.cfg.CLI.Yes && isatty.IsTerminal(os.Stdin.Fd()) {
		ok, err := confirm(len(windows))
		if err != nil {
			return err
		}

		if !ok {
			pterm.Info.Println("Nothing was cut")
			return nil
		}
	}

	rep, err := cutter.CutSession(ctx.Context, sess)
	if rep != nil {
		e.record(rep)
	}

	if err != nil {
		return err
	}

	return e.finish(rep)
}

// windowsAction handles the windows command which prints the tracks a
// session would be cut into.
func windowsAction(ctx *cli.Context) error {
	path, err := sessionArg(ctx)
	if err != nil {
		return err
	}

	var e *env

	// only reviewed boundaries need the database
	if ctx.Bool("reviewed") {
		e, err = setup(ctx)
	} else {
		e, err = loadConfig(ctx)
	}

	if err != nil {
		return err
	}

	defer e.close()

	sess, strategy, err := e.loadSession(path, ctx.Bool("reviewed"))
	if err != nil {
		return err
	}

	cutter := cut.New(nil,
		cut.WithStrategy(strategy),
		cut.WithOutputDir(e.cfg.Output.Dir),
		cut.WithExtension(e.cfg.Output.Ext),
	)

	windows, dests, err := cutter.Windows(sess)
	if err != nil {
		return err
	}

	printWindows(os.Stdout, windows, dests)

	return nil
}
