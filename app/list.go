package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/models"
	"github.com/ayoisaiah/setsplit/internal/ui"
)

const (
	noHistoryMsg = "No tracks have been cut yet"
)

// printWindows prints the tracks a session is cut into.
func printWindows(w io.Writer, windows []cut.Window, dests []string) {
	tableBody := make([][]string, len(windows))

	for i, v := range windows {
		tableBody[i] = []string{
			fmt.Sprintf("%02d", v.Song.Number),
			ui.Highlight(v.Song.Artist + " - " + v.Song.Title),
			v.Start.String(),
			v.End.String(),
			audiotime.FormatSeconds(v.Duration()) + "s",
			dests[i],
		}
	}

	tableBody = append([][]string{
		{"#", "TRACK", "START", "END", "DURATION", "DESTINATION"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// printHistoryTable prints a table of extraction results to the
// command-line.
func printHistoryTable(w io.Writer, extractions []models.Extraction) {
	tableBody := make([][]string, len(extractions))

	for i := range extractions {
		x := &extractions[i]

		statusText := ui.Green("cut")

		switch {
		case x.Failed():
			statusText = ui.Red("failed")
		case x.URL != "":
			statusText = ui.Green("uploaded")
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			ui.Yellow(x.Session),
			x.Song.String(),
			fmt.Sprintf("%s–%s", x.Start.SecondsString(), x.End.SecondsString()),
			x.Dest,
			x.CreatedAt.Format("Jan 02, 2006 03:04 PM"),
			statusText,
		}
	}

	tableBody = append([][]string{
		{"#", "SESSION", "TRACK", "WINDOW", "DESTINATION", "DATE", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// sortExtractions orders extractions naturally by destination so that
// track 10 follows track 9.
func sortExtractions(extractions []models.Extraction) {
	sort.SliceStable(extractions, func(i, j int) bool {
		return natural.Less(extractions[i].Dest, extractions[j].Dest)
	})
}

// historyAction handles the history command and prints every track cut so
// far.
func historyAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	extractions, err := e.db.GetExtractions(ctx.String("session"))
	if err != nil {
		return err
	}

	sortExtractions(extractions)

	if ctx.Bool("json") {
		b, err := json.Marshal(extractions)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(extractions) == 0 {
		pterm.Info.Println(noHistoryMsg)
		return nil
	}

	printHistoryTable(os.Stdout, extractions)

	return nil
}
