// Package report prints the outcome of cutting sessions to the terminal
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/ui"
)

// Track prints a one-line summary of a finished track.
func Track(r cut.Result) {
	if !r.OK() {
		pterm.Error.Printfln("%s: %s", r.Window, r.Err)
		return
	}

	pterm.Success.Printfln(
		"%s → %s (%s)",
		r.Window.Song,
		ui.Cyan(r.Dest),
		r.Elapsed.Round(time.Millisecond),
	)

	if r.PublishErr != nil {
		pterm.Warning.Printfln("upload of %s failed: %s", r.Window.Song, r.PublishErr)
	} else if r.URL != "" {
		pterm.Info.Printfln("uploaded to %s", ui.Cyan(r.URL))
	}
}

// Summary prints the totals of a cutting run.
func Summary(w io.Writer, rep *cut.Report) {
	failed := rep.Failed()

	if len(failed) == 0 {
		fmt.Fprintln(w, pterm.Success.Sprintf(
			"%s: %d tracks cut",
			rep.Session,
			rep.Succeeded(),
		))

		return
	}

	fmt.Fprintln(w, pterm.Warning.Sprintf(
		"%s: %d tracks cut, %s",
		rep.Session,
		rep.Succeeded(),
		ui.Red(fmt.Sprintf("%d failed", len(failed))),
	))

	for _, v := range failed {
		fmt.Fprintln(w, "  "+ui.Red(v.Window.String()))
	}
}
