// Package extract copies a time range of a recording into its own file
// without re-encoding
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
)

var (
	// ErrSetup is matched by failures that happen before the extractor ran:
	// the destination could not be prepared or the process could not start.
	ErrSetup = &apperr.Error{
		Message: "extraction setup failed",
	}

	// ErrExtraction is matched when the extractor ran but did not produce
	// the requested file.
	ErrExtraction = &apperr.Error{
		Message: "extraction failed",
	}
)

// Job describes one extraction.
type Job struct {
	Source   string
	Dest     string
	Start    audiotime.AudioTime
	Duration time.Duration
}

// End returns the end of the extracted range.
func (j Job) End() audiotime.AudioTime {
	return j.Start.Add(j.Duration)
}

func (j Job) String() string {
	return fmt.Sprintf("%ss+%ss %s -> %s",
		j.Start.SecondsString(),
		audiotime.FormatSeconds(j.Duration),
		j.Source,
		j.Dest,
	)
}

// Extractor produces Job.Dest containing exactly the requested range of
// Job.Source. Dest is only present once the extraction fully succeeded.
type Extractor interface {
	Extract(ctx context.Context, job Job) error
}
