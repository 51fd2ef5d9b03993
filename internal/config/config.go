package config

import "time"

type (
	// Config holds all configuration settings
	Config struct {
		Output        OutputConfig       `mapstructure:"output"`
		Cutting       CuttingConfig      `mapstructure:"cutting"`
		Extractor     ExtractorConfig    `mapstructure:"extractor"`
		Upload        UploadConfig       `mapstructure:"upload"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
		Review        ReviewConfig       `mapstructure:"review"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	// OutputConfig controls where extracted tracks are written
	OutputConfig struct {
		Dir string `mapstructure:"dir"`
		// Ext overrides the extension of extracted tracks. The source
		// recording's extension is used when empty
		Ext string `mapstructure:"ext"`
	}

	// CuttingConfig holds boundary computation settings
	CuttingConfig struct {
		Strategy    string        `mapstructure:"strategy"`
		Offset      time.Duration `mapstructure:"offset"`
		Concurrency int           `mapstructure:"concurrency"`
	}

	// ExtractorConfig holds the external extractor settings
	ExtractorConfig struct {
		Bin  string `mapstructure:"bin"`
		Args string `mapstructure:"args"`
	}

	// ReviewConfig holds interactive review settings
	ReviewConfig struct {
		ExcerptWindow time.Duration `mapstructure:"excerpt_window"`
		Nudge         time.Duration `mapstructure:"nudge"`
		Resolution    int           `mapstructure:"resolution"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// UploadConfig holds settings for copying tracks to cloud storage
	UploadConfig struct {
		Bucket          string `mapstructure:"bucket"`
		Prefix          string `mapstructure:"prefix"`
		CredentialsFile string `mapstructure:"credentials_file"`
		Enabled         bool   `mapstructure:"enabled"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		Level     string `mapstructure:"level"`
		MaxSizeMB int    `mapstructure:"max_size_mb"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds settings that only come from the command line
	CLIConfig struct {
		Reviewed bool
		Yes      bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

// New creates a new Config, applies options in order and validates the
// result
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
