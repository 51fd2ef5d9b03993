package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("track extracted", slog.String("song", "01. Band - Intro"))

	var rec map[string]any

	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "track extracted", rec["msg"])
	assert.Equal(t, "01. Band - Intro", rec["song"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestNewCreatesLogDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "setsplit.log")

	logger, closer, err := New(Options{
		Path:  path,
		Level: slog.LevelDebug,
	})
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("hello")

	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	assert.Contains(t, string(b), `"msg":"hello"`)
}
