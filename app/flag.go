package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Directory tracks are written under as <Artist>/<Album>/<NN> <Title>.<ext> (default: music)",
	}

	extFlag = &cli.StringFlag{
		Name:  "ext",
		Usage: "Extension of the cut tracks. Defaults to the extension of the recording",
	}

	strategyFlag = &cli.StringFlag{
		Name:    "strategy",
		Aliases: []string{"s"},
		Usage:   "How track boundaries are computed: 'lengths' (first timestamp plus accumulated track lengths) or 'timestamps' (consecutive timestamps)",
	}

	offsetFlag = &cli.StringFlag{
		Name:  "offset",
		Usage: "Shift every boundary by a calibration offset such as 1.5s, -250ms or 0:01.2 (default: 0s)",
	}

	ffmpegFlag = &cli.StringFlag{
		Name:  "ffmpeg",
		Usage: "Path to the ffmpeg binary (default: ffmpeg)",
	}

	concurrencyFlag = &cli.UintFlag{
		Name:    "concurrency",
		Aliases: []string{"c"},
		Usage:   "Number of tracks extracted at once (default: 1)",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is cut",
	}

	uploadFlag = &cli.BoolFlag{
		Name:  "upload",
		Usage: "Upload every cut track to the configured cloud storage bucket",
	}

	reviewedFlag = &cli.BoolFlag{
		Name:    "reviewed",
		Aliases: []string{"r"},
		Usage:   "Use the boundaries saved by 'setsplit review' instead of computing them",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Cut without asking for confirmation",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	sessionFlag = &cli.StringFlag{
		Name:  "session",
		Usage: "Only list tracks cut from the named session",
	}
)
