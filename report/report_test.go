package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/song"
)

func TestSummary(t *testing.T) {
	pterm.DisableStyling()

	ok := cut.Result{
		Window: cut.Window{
			Song: song.Song{Number: 1, Artist: "Band", Title: "One"},
			End:  audiotime.FromSeconds(60),
		},
	}

	failed := cut.Result{
		Window: cut.Window{
			Song:  song.Song{Number: 2, Artist: "Band", Title: "Two"},
			Start: audiotime.FromSeconds(60),
			End:   audiotime.FromSeconds(120),
			Index: 1,
		},
		Err: errors.New("exit status 1"),
	}

	testCases := []struct {
		name    string
		results []cut.Result
		want    []string
	}{
		{
			name:    "all tracks cut",
			results: []cut.Result{ok, ok},
			want:    []string{"gig: 2 tracks cut"},
		},
		{
			name:    "some tracks failed",
			results: []cut.Result{ok, failed},
			want: []string{
				"gig: 1 tracks cut",
				"1 failed",
				failed.Window.String(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			Summary(&buf, &cut.Report{Session: "gig", Results: tc.results})

			for _, v := range tc.want {
				assert.Contains(t, buf.String(), v)
			}
		})
	}
}
