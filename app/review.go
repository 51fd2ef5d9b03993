package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/envelope"
	"github.com/ayoisaiah/setsplit/internal/models"
	"github.com/ayoisaiah/setsplit/internal/playback"
	"github.com/ayoisaiah/setsplit/internal/review"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/store"
	"github.com/ayoisaiah/setsplit/tui"
)

// restoreReview applies the cut times saved for the session under review.
// A review saved before the session file changed shape is ignored.
func (e *env) restoreReview(r *review.Review) error {
	name := r.Session().Name

	saved, err := e.db.GetReview(name)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	err = r.Restore(saved.CutTimes)
	if err != nil {
		e.logger.Warn("saved review ignored",
			slog.String("session", name),
			slog.Any("error", err),
		)
		pterm.Warning.Printfln("Ignoring the saved review of %s: %s", name, err)

		return nil
	}

	pterm.Info.Printfln(
		"Restored the review of %s from %s",
		name,
		saved.UpdatedAt.Format("Jan 02, 2006 03:04 PM"),
	)

	return nil
}

// reviewAction handles the review command which opens the interactive
// boundary editor.
func reviewAction(ctx *cli.Context) error {
	path, err := sessionArg(ctx)
	if err != nil {
		return err
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	sess, strategy, err := e.loadSession(path, false)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Reading " + sess.BufferFile)

	src, err := envelope.Open(sess.BufferFile, e.cfg.Review.Resolution)
	if err != nil {
		spinner.Fail()
		return err
	}

	defer src.Close()

	r, err := review.Build(sess, strategy, src, e.cfg.Review.ExcerptWindow, e.logger)
	if err != nil {
		spinner.Fail()
		return err
	}

	spinner.Success()

	err = e.restoreReview(r)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Review: r,
		Logger: e.logger,
		Nudge:  e.cfg.Review.Nudge,
		Save: func(times []audiotime.AudioTime) error {
			return e.db.SaveReview(&models.Review{
				UpdatedAt:   time.Now(),
				Session:     sess.Name,
				SessionFile: path,
				CutTimes:    times,
			})
		},
		Cut: func(
			ctx context.Context,
			reviewed *session.RecordingSession,
			onFinished func(cut.Result),
		) (*cut.Report, error) {
			cutter, closer, err := e.newCutter(ctx, cut.AccumulatedLengths(0), onFinished)
			if err != nil {
				return nil, err
			}

			defer closer.Close()

			rep, err := cutter.CutSession(ctx, reviewed)
			if rep != nil {
				e.record(rep)
			}

			return rep, err
		},
	}

	player, err := playback.Open(sess.BufferFile, playback.Speaker())
	if err != nil {
		e.logger.Warn("playback unavailable", slog.Any("error", err))
	} else {
		defer player.Close()

		opts.Player = player
	}

	m := tui.New(opts)

	err = tui.Run(m)

	m.Wait()

	if err != nil {
		return err
	}

	rep, err := m.Report()
	if err != nil {
		return err
	}

	if rep == nil {
		return nil
	}

	return e.finish(rep)
}
