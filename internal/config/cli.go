package config

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	OutputDir     string
	Ext           string
	Strategy      string
	Offset        string
	ExtractorBin  string
	Concurrency   uint
	DisableNotify bool
	Upload        bool
	Reviewed      bool
	Yes           bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Flags that were not set leave the file values alone.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			OutputDir:     ctx.String("output"),
			Ext:           ctx.String("ext"),
			Strategy:      ctx.String("strategy"),
			Offset:        ctx.String("offset"),
			ExtractorBin:  ctx.String("ffmpeg"),
			Concurrency:   ctx.Uint("concurrency"),
			DisableNotify: ctx.Bool("disable-notification"),
			Upload:        ctx.Bool("upload"),
			Reviewed:      ctx.Bool("reviewed"),
			Yes:           ctx.Bool("yes"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.OutputDir != "" {
		c.Output.Dir = opts.OutputDir
	}

	if opts.Ext != "" {
		c.Output.Ext = opts.Ext
	}

	if opts.Strategy != "" {
		c.Cutting.Strategy = opts.Strategy
	}

	if opts.Offset != "" {
		// negative offsets shift cuts earlier
		neg := opts.Offset[0] == '-'

		s := opts.Offset
		if neg {
			s = s[1:]
		}

		d, err := audiotime.ParseDuration(s)
		if err != nil {
			return errInvalidCLIOffset.Fmt(opts.Offset).Wrap(err)
		}

		if neg {
			d = -d
		}

		c.Cutting.Offset = d
	}

	if opts.Concurrency > 0 {
		c.Cutting.Concurrency = int(opts.Concurrency)
	}

	if opts.ExtractorBin != "" {
		c.Extractor.Bin = opts.ExtractorBin
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Upload {
		c.Upload.Enabled = true
	}

	c.CLI.Reviewed = opts.Reviewed
	c.CLI.Yes = opts.Yes

	return nil
}
