// Package audio decodes recordings into seekable sample streams
package audio

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/setsplit/internal/apperr"
)

var (
	errUnsupportedFormat = &apperr.Error{
		Message: "unsupported audio format %q: recording must be wav, mp3, flac or ogg",
	}

	errDecode = &apperr.Error{
		Message: "unable to decode %s",
	}
)

// Stream is a decoded recording. Closing it releases the underlying file.
type Stream struct {
	beep.StreamSeekCloser
	file   *os.File
	Format beep.Format
}

// Length returns the duration of the whole recording.
func (s *Stream) Length() time.Duration {
	return s.Format.SampleRate.D(s.Len())
}

// SeekTo moves the stream to offset d, clamped to the stream bounds.
func (s *Stream) SeekTo(d time.Duration) error {
	n := s.Format.SampleRate.N(d)

	n = max(0, min(n, s.Len()))

	return s.Seek(n)
}

func (s *Stream) Close() error {
	err := s.StreamSeekCloser.Close()

	// some decoders close the file themselves
	_ = s.file.Close()

	return err
}

// Supported reports whether path has an extension Open can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".flac", ".ogg":
		return true
	}

	return false
}

// Open decodes the recording at path based on its extension.
func Open(path string) (*Stream, error) {
	if !Supported(path) {
		return nil, errUnsupportedFormat.Fmt(filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}

	if err != nil {
		_ = f.Close()

		return nil, errDecode.Fmt(path).Wrap(err)
	}

	return &Stream{
		StreamSeekCloser: stream,
		Format:           format,
		file:             f,
	}, nil
}
