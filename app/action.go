package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/config"
	"github.com/ayoisaiah/setsplit/internal/logging"
	"github.com/ayoisaiah/setsplit/internal/notify"
	"github.com/ayoisaiah/setsplit/internal/osutil"
	"github.com/ayoisaiah/setsplit/internal/pathutil"
	"github.com/ayoisaiah/setsplit/internal/static"
	"github.com/ayoisaiah/setsplit/internal/ui"
	"github.com/ayoisaiah/setsplit/store"
)

const (
	envNoColor         = "NO_COLOR"
	envSetsplitNoColor = "SETSPLIT_NO_COLOR"

	defaultSessionFile = "session.yml"
)

var (
	errSessionArg = &apperr.Error{
		Message: "%s expects the path to a session file",
	}

	// ErrTracksFailed is returned when a session was cut but some of its
	// tracks could not be extracted.
	ErrTracksFailed = &apperr.Error{
		Message: "%d of %d tracks could not be cut",
	}
)

// env holds what every command working on sessions needs.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *store.Client
	notifier *notify.Notifier
	closers  []io.Closer
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// loadConfig reads the configuration file (asking for the initial values on
// first run in a terminal), applies the command-line flags and opens the
// log file.
func loadConfig(ctx *cli.Context) (*env, error) {
	err := pathutil.Initialize()
	if err != nil {
		return nil, err
	}

	configPath := pathutil.ConfigFilePath()

	var opts []config.Option

	if isatty.IsTerminal(os.Stdin.Fd()) {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Path:      pathutil.LogFilePath(),
		Level:     level,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	ui.DarkTheme = cfg.Display.DarkTheme

	logger.Debug("configuration loaded",
		slog.String("path", configPath),
		slog.Any("config", cfg),
	)

	return &env{
		cfg:      cfg,
		logger:   logger,
		notifier: notify.New(cfg.Notifications.Enabled, pathutil.Dir(), logger),
		closers:  []io.Closer{closer},
	}, nil
}

// setup is loadConfig followed by opening the database.
func setup(ctx *cli.Context) (*env, error) {
	e, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		e.close()
		return nil, err
	}

	e.db = db
	e.closers = append(e.closers, db)

	return e, nil
}

// sessionArg returns the session file named on the command line.
func sessionArg(ctx *cli.Context) (string, error) {
	path := ctx.Args().First()
	if path == "" {
		return "", errSessionArg.Fmt(ctx.Command.Name)
	}

	return path, nil
}

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// initAction handles the init command which writes an example session file.
func initAction(ctx *cli.Context) error {
	dest := firstNonEmptyString(ctx.Args().First(), defaultSessionFile)

	err := static.WriteSessionTemplate(dest)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Session template written to %s", ui.Cyan(dest))

	return nil
}

// editConfigAction handles the edit-config command which opens the setsplit
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// creates the file with the defaults if it is missing
	e, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/setsplit/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if SETSPLIT_NO_COLOR is set
	if _, exists := os.LookupEnv(envSetsplitNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
