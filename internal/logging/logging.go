// Package logging sets up the application's structured log file
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/osutil"
)

const (
	defaultMaxSizeMB = 10
	maxBackups       = 3
	maxAgeDays       = 28
)

var errLogDir = &apperr.Error{
	Message: "unable to create log directory %s",
}

// Options controls where and how much is logged.
type Options struct {
	Path      string
	Level     slog.Level
	MaxSizeMB int
}

// New returns a JSON logger writing to a rotating file at opts.Path. The
// returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	err := os.MkdirAll(filepath.Dir(opts.Path), osutil.DirPermission)
	if err != nil {
		return nil, nil, errLogDir.Fmt(filepath.Dir(opts.Path)).Wrap(err)
	}

	size := opts.MaxSizeMB
	if size <= 0 {
		size = defaultMaxSizeMB
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    size,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	return NewWithWriter(w, opts.Level), w, nil
}

// NewWithWriter returns a JSON logger writing to w.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return NewWithWriter(io.Discard, slog.LevelError+1)
}
