// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"errors"
	"os"
	"path/filepath"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/osutil"
)

const (
	filesDir        = "files"
	sessionTemplate = "session.yml"
)

//go:embed files/*
var embeddedFiles embed.FS

var errFileExists = &apperr.Error{
	Message: "%s already exists",
}

// SessionTemplate returns the example session file.
func SessionTemplate() ([]byte, error) {
	return embeddedFiles.ReadFile(filesDir + "/" + sessionTemplate)
}

// WriteSessionTemplate writes the example session file to dest. An
// existing file is never overwritten.
func WriteSessionTemplate(dest string) error {
	b, err := SessionTemplate()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dest); err == nil || !errors.Is(err, os.ErrNotExist) {
		return errFileExists.Fmt(dest)
	}

	if err := os.MkdirAll(filepath.Dir(dest), osutil.DirPermission); err != nil {
		return err
	}

	return os.WriteFile(dest, b, osutil.FilePermission)
}
