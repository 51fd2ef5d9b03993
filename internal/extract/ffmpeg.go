package extract

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
)

const partialSuffix = ".partial"

var (
	errParseArgs = &apperr.Error{
		Message: "unable to parse extractor.args option",
	}

	errEmptyOutput = &apperr.Error{
		Message: "%s produced no output",
	}

	errExitStatus = &apperr.Error{
		Message: "%s exited unsuccessfully: %s",
	}

	errStart = &apperr.Error{
		Message: "unable to run %s",
	}
)

var _ Extractor = (*FFmpeg)(nil)

// FFmpeg extracts ranges with ffmpeg's stream copy.
type FFmpeg struct {
	runner    Runner
	logger    *slog.Logger
	bin       string
	extraArgs []string
}

// NewFFmpeg returns an extractor running bin. extraArgs is a shell-quoted
// string of additional output options placed before the output path.
func NewFFmpeg(
	bin, extraArgs string,
	runner Runner,
	logger *slog.Logger,
) (*FFmpeg, error) {
	args, err := shellquote.Split(extraArgs)
	if err != nil {
		return nil, errParseArgs.Wrap(err)
	}

	if bin == "" {
		bin = "ffmpeg"
	}

	if runner == nil {
		runner = BinaryRunner{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FFmpeg{
		runner:    runner,
		logger:    logger,
		bin:       bin,
		extraArgs: args,
	}, nil
}

// Args returns the ffmpeg arguments that write job's range to out.
func (f *FFmpeg) Args(job Job, out string) []string {
	args := []string{
		"-ss", job.Start.SecondsString(),
		"-t", audiotime.FormatSeconds(job.Duration),
		"-i", job.Source,
		"-acodec", "copy",
		"-y",
	}

	args = append(args, f.extraArgs...)

	return append(args, out)
}

// Extract writes to a temporary sibling of job.Dest and renames it into
// place only when ffmpeg succeeded, so an interrupted extraction never
// leaves a partial file under the final name.
func (f *FFmpeg) Extract(ctx context.Context, job Job) error {
	tmp := partialPath(job.Dest)

	args := f.Args(job, tmp)

	logger := f.logger.With(
		slog.String("source", job.Source),
		slog.String("dest", job.Dest),
		slog.String("start", job.Start.SecondsString()),
		slog.String("duration", audiotime.FormatSeconds(job.Duration)),
	)

	logger.Info("running extractor", slog.Any("args", args))

	output, err := f.runner.Run(ctx, f.bin, args...)

	logger.Debug("extractor output", slog.String("output", string(output)))

	if err != nil {
		_ = os.Remove(tmp)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ErrExtraction.Wrap(
				errExitStatus.Fmt(f.bin, tailOutput(output)).Wrap(err),
			)
		}

		return ErrSetup.Wrap(errStart.Fmt(f.bin).Wrap(err))
	}

	info, err := os.Stat(tmp)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(tmp)

		return ErrExtraction.Wrap(errEmptyOutput.Fmt(f.bin))
	}

	if err := os.Rename(tmp, job.Dest); err != nil {
		_ = os.Remove(tmp)

		return ErrExtraction.Wrap(err)
	}

	logger.Info("extraction complete")

	return nil
}

// partialPath keeps the destination extension last so ffmpeg still picks
// the right muxer.
func partialPath(dest string) string {
	dir, base := filepath.Split(dest)
	ext := filepath.Ext(base)

	return filepath.Join(
		dir,
		"."+strings.TrimSuffix(base, ext)+partialSuffix+ext,
	)
}

// tailOutput keeps the last lines of the extractor output, where ffmpeg
// reports the reason it failed.
func tailOutput(output []byte) string {
	const maxLines = 5

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	return strings.Join(lines, " | ")
}
