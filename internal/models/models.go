package models

import (
	"time"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/song"
)

// Review is the saved state of a session review.
type Review struct {
	UpdatedAt time.Time `json:"updated_at"`
	Session   string    `json:"session"`
	// SessionFile is the session file the review was made for
	SessionFile string                `json:"session_file"`
	CutTimes    []audiotime.AudioTime `json:"cut_times"`
}

// Extraction is the outcome of cutting one track.
type Extraction struct {
	CreatedAt time.Time           `json:"created_at"`
	Session   string              `json:"session"`
	Dest      string              `json:"dest"`
	URL       string              `json:"url,omitempty"`
	Error     string              `json:"error,omitempty"`
	Song      song.Song           `json:"song"`
	Start     audiotime.AudioTime `json:"start"`
	End       audiotime.AudioTime `json:"end"`
	Elapsed   time.Duration       `json:"elapsed"`
}

// Failed reports whether the track could not be extracted.
func (e *Extraction) Failed() bool {
	return e.Error != ""
}
