// Package testutil holds helpers shared by package tests
package testutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// Format is the sample format of the recordings written by WriteWAV.
var Format = beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}

func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}

// Constant streams n samples of amplitude amp on both channels.
func Constant(amp float64, n int) beep.Streamer {
	left := n

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}

		k := min(len(samples), left)
		for i := range samples[:k] {
			samples[i] = [2]float64{amp, amp}
		}

		left -= k

		return k, true
	})
}

// WriteWAV writes a recording of length d at constant amplitude amp to a
// temporary directory and returns its path.
func WriteWAV(t *testing.T, name string, d time.Duration, amp float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	defer f.Close()

	err = wav.Encode(f, Constant(amp, Format.SampleRate.N(d)), Format)
	if err != nil {
		t.Fatal(err)
	}

	return path
}
