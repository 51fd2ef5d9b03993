// Package session defines recording sessions: one source recording and the
// ordered tracks it contains
package session

import (
	"time"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/song"
)

// ErrInvalidSession is matched by every session validation failure.
var ErrInvalidSession = &apperr.Error{
	Message: "invalid session",
}

var (
	errNoSongs = &apperr.Error{
		Message: "the track list is empty",
	}

	errNoTimestamps = &apperr.Error{
		Message: "at least one timestamp (the recording start) is required",
	}

	errNoBufferFile = &apperr.Error{
		Message: "no source recording specified",
	}

	errNegativeLength = &apperr.Error{
		Message: "track %s has a negative length (%v)",
	}
)

// RecordingSession holds a single concatenated recording and the tracks it
// contains. Only the first timestamp is used as the cutting origin when
// cutting by accumulated track length.
type RecordingSession struct {
	Name       string                `json:"name"`
	BufferFile string                `json:"buffer_file"`
	Timestamps []audiotime.AudioTime `json:"timestamps"`
	Songs      []song.Song           `json:"songs"`
}

// Validate rejects sessions that cannot be cut.
func (s *RecordingSession) Validate() error {
	if len(s.Songs) == 0 {
		return ErrInvalidSession.Wrap(errNoSongs)
	}

	if len(s.Timestamps) == 0 {
		return ErrInvalidSession.Wrap(errNoTimestamps)
	}

	if s.BufferFile == "" {
		return ErrInvalidSession.Wrap(errNoBufferFile)
	}

	for _, v := range s.Songs {
		if v.Length < 0 {
			return ErrInvalidSession.Wrap(errNegativeLength.Fmt(v, v.Length))
		}
	}

	return nil
}

// Start returns the cutting origin.
func (s *RecordingSession) Start() audiotime.AudioTime {
	if len(s.Timestamps) == 0 {
		return audiotime.Zero
	}

	return s.Timestamps[0]
}

// TotalLength returns the sum of all track lengths.
func (s *RecordingSession) TotalLength() time.Duration {
	var total time.Duration

	for _, v := range s.Songs {
		total += v.Length
	}

	return total
}

// Clone returns a deep copy of the session.
func (s *RecordingSession) Clone() *RecordingSession {
	c := *s

	c.Timestamps = append([]audiotime.AudioTime(nil), s.Timestamps...)
	c.Songs = append([]song.Song(nil), s.Songs...)

	return &c
}
