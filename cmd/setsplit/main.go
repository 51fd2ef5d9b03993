package main

import (
	"errors"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/setsplit/app"
	"github.com/ayoisaiah/setsplit/internal/osutil"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err == nil {
		return
	}

	pterm.Error.Println(err)

	if errors.Is(err, app.ErrTracksFailed) {
		os.Exit(int(osutil.ExitPartial))
	}

	os.Exit(int(osutil.ExitError))
}
