package session

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/pathutil"
	"github.com/ayoisaiah/setsplit/internal/song"
)

var (
	errReadSession = &apperr.Error{
		Message: "reading session file %s failed",
	}

	errDecodeSession = &apperr.Error{
		Message: "decoding session file %s failed",
	}

	errInvalidTimestamp = &apperr.Error{
		Message: "timestamp #%d: %v",
	}

	errInvalidLength = &apperr.Error{
		Message: "track #%d (%s): %v",
	}

	errMissingLength = &apperr.Error{
		Message: "track #%d (%s) has no length",
	}
)

// fileSong is a track as written in a session file.
type fileSong struct {
	Title    string `mapstructure:"title"`
	Artist   string `mapstructure:"artist"`
	Album    string `mapstructure:"album"`
	Length   string `mapstructure:"length"`
	LengthUS *int64 `mapstructure:"length_us"`
	Number   int    `mapstructure:"number"`
}

// file is the on-disk shape of a session.
type file struct {
	Name       string     `mapstructure:"name"`
	BufferFile string     `mapstructure:"buffer_file"`
	Artist     string     `mapstructure:"artist"`
	Album      string     `mapstructure:"album"`
	Timestamps []string   `mapstructure:"timestamps"`
	Songs      []fileSong `mapstructure:"songs"`
}

// Load reads a session file in any format viper understands (yaml, json,
// toml). A relative buffer_file is resolved against the session file's
// directory. The loaded session is validated before it is returned.
func Load(path string) (*RecordingSession, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errReadSession.Fmt(path).Wrap(err)
	}

	var f file

	if err := v.Unmarshal(&f); err != nil {
		return nil, errDecodeSession.Fmt(path).Wrap(err)
	}

	sess, err := f.toSession(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if sess.Name == "" {
		sess.Name = pathutil.StripExtension(filepath.Base(path))
	}

	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sess, nil
}

func (f *file) toSession(dir string) (*RecordingSession, error) {
	sess := &RecordingSession{
		Name:       f.Name,
		BufferFile: f.BufferFile,
	}

	if sess.BufferFile != "" && !filepath.IsAbs(sess.BufferFile) {
		sess.BufferFile = filepath.Join(dir, sess.BufferFile)
	}

	for i, v := range f.Timestamps {
		ts, err := audiotime.Parse(v)
		if err != nil {
			return nil, ErrInvalidSession.Wrap(errInvalidTimestamp.Fmt(i+1, err))
		}

		sess.Timestamps = append(sess.Timestamps, ts)
	}

	for i, v := range f.Songs {
		s := song.Song{
			Title:  v.Title,
			Artist: firstNonEmpty(v.Artist, f.Artist),
			Album:  firstNonEmpty(v.Album, f.Album),
			Number: v.Number,
		}

		if s.Number == 0 {
			s.Number = i + 1
		}

		switch {
		case v.LengthUS != nil:
			if *v.LengthUS < 0 {
				return nil, ErrInvalidSession.Wrap(
					errInvalidLength.Fmt(i+1, v.Title, *v.LengthUS),
				)
			}

			s.Length = song.FromMicros(*v.LengthUS)
		case v.Length != "":
			d, err := audiotime.ParseDuration(v.Length)
			if err != nil {
				return nil, ErrInvalidSession.Wrap(errInvalidLength.Fmt(i+1, v.Title, err))
			}

			// lengths are exact to the microsecond
			s.Length = d.Truncate(time.Microsecond)
		default:
			return nil, ErrInvalidSession.Wrap(errMissingLength.Fmt(i+1, v.Title))
		}

		sess.Songs = append(sess.Songs, s)
	}

	return sess, nil
}

// firstNonEmpty returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}
