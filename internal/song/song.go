// Package song describes the tracks contained in a recording
package song

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	unknownArtist = "Unknown Artist"
	unknownAlbum  = "Unknown Album"
)

// Song is one track of a recording session. Songs are compared by value.
type Song struct {
	Artist string        `json:"artist"`
	Album  string        `json:"album"`
	Title  string        `json:"title"`
	Number int           `json:"number"`
	Length time.Duration `json:"length"` // microsecond resolution
}

// FromMicros converts a length in microseconds to a duration.
func FromMicros(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}

// Micros returns the song length in whole microseconds.
func (s Song) Micros() int64 {
	return s.Length.Microseconds()
}

func (s Song) String() string {
	artist := s.Artist
	if artist == "" {
		artist = unknownArtist
	}

	return fmt.Sprintf("%02d. %s - %s", s.Number, artist, s.Title)
}

// FileName returns the base name of the song's output file.
func (s Song) FileName(ext string) string {
	title := sanitize(s.Title)
	if title == "" {
		title = "Track"
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return fmt.Sprintf("%02d %s%s", s.Number, title, ext)
}

// RelPath returns the song's output path relative to the music root:
// <Artist>/<Album>/<NN> <Title><ext>.
func (s Song) RelPath(ext string) string {
	artist := sanitize(s.Artist)
	if artist == "" {
		artist = unknownArtist
	}

	album := sanitize(s.Album)
	if album == "" {
		album = unknownAlbum
	}

	return filepath.Join(artist, album, s.FileName(ext))
}

// TargetFile returns the song's output path under root.
func (s Song) TargetFile(root, ext string) string {
	return filepath.Join(root, s.RelPath(ext))
}

var pathReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"\x00", "",
)

// sanitize keeps a name usable as a single path component.
func sanitize(name string) string {
	name = strings.TrimSpace(pathReplacer.Replace(name))

	// "." and ".." would escape the directory structure
	name = strings.Trim(name, ".")

	return strings.TrimSpace(name)
}
