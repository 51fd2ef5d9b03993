package config

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
███████╗███████╗████████╗███████╗██████╗ ██╗     ██╗████████╗
██╔════╝██╔════╝╚══██╔══╝██╔════╝██╔══██╗██║     ██║╚══██╔══╝
███████╗█████╗     ██║   ███████╗██████╔╝██║     ██║   ██║
╚════██║██╔══╝     ██║   ╚════██║██╔═══╝ ██║     ██║   ██║
███████║███████╗   ██║   ███████║██║     ███████╗██║   ██║
╚══════╝╚══════╝   ╚═╝   ╚══════╝╚═╝     ╚══════╝╚═╝   ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	OutputDir   string
	Strategy    string
	Concurrency int
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts. It only runs when configPath does not exist yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		OutputDir: "music",
	}

	// Display welcome message
	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure setsplit for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'setsplit edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Directory to write tracks to").
				Value(&opts.OutputDir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Find track boundaries using").
				Options(
					huh.NewOption("Track lengths from the first timestamp", "lengths").Selected(true),
					huh.NewOption("Consecutive timestamps", "timestamps"),
				).
				Value(&opts.Strategy),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Tracks to extract at once").
				Options(
					huh.NewOption("1", 1).Selected(true),
					huh.NewOption("2", 2),
					huh.NewOption("4", 4),
					huh.NewOption("8", 8),
				).
				Value(&opts.Concurrency),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Output.Dir = strings.TrimSpace(opts.OutputDir)
	c.Cutting.Strategy = opts.Strategy
	c.Cutting.Concurrency = opts.Concurrency

	return nil
}
