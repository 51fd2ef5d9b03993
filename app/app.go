package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the setsplit app instance.
func Get() *cli.App {
	setsplitApp := &cli.App{
		Name: "setsplit",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		setsplit cuts one continuous recording into a file per track. Track
		boundaries come from a session file and can be refined against the
		waveform before the recording is split losslessly with ffmpeg.`,
		UsageText:            "[COMMAND] [OPTIONS] <session.yml>",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "cut",
				Usage:     "Cut the recording of a session into tracks",
				ArgsUsage: "<session.yml>",
				Flags: []cli.Flag{
					reviewedFlag,
					yesFlag,
				},
				Action: cutAction,
			},
			{
				Name:      "review",
				Usage:     "Refine the track boundaries of a session interactively",
				ArgsUsage: "<session.yml>",
				Action:    reviewAction,
			},
			{
				Name:      "discard-review",
				Usage:     "Forget the boundaries saved by 'setsplit review'",
				ArgsUsage: "<session.yml>",
				Action:    discardReviewAction,
			},
			{
				Name:      "windows",
				Usage:     "Print the tracks a session would be cut into without cutting",
				ArgsUsage: "<session.yml>",
				Flags: []cli.Flag{
					reviewedFlag,
				},
				Action: windowsAction,
			},
			{
				Name:  "history",
				Usage: "List previously cut tracks",
				Flags: []cli.Flag{
					jsonFlag,
					sessionFlag,
				},
				Action: historyAction,
			},
			{
				Name:      "init",
				Usage:     "Write an example session file",
				ArgsUsage: "[path]",
				Action:    initAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			outputFlag,
			extFlag,
			strategyFlag,
			offsetFlag,
			ffmpegFlag,
			concurrencyFlag,
			disableNotificationFlag,
			uploadFlag,
			noColorFlag,
		},
		Before: beforeAction,
	}

	return setsplitApp
}
