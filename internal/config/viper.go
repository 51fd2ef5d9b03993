package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyOutputDir            = "output.dir"
	keyOutputExt            = "output.ext"
	keyCuttingStrategy      = "cutting.strategy"
	keyCuttingOffset        = "cutting.offset"
	keyCuttingConcurrency   = "cutting.concurrency"
	keyExtractorBin         = "extractor.bin"
	keyExtractorArgs        = "extractor.args"
	keyReviewExcerptWindow  = "review.excerpt_window"
	keyReviewResolution     = "review.resolution"
	keyReviewNudge          = "review.nudge"
	keyNotificationsEnabled = "notifications.enabled"
	keyUploadEnabled        = "upload.enabled"
	keyUploadBucket         = "upload.bucket"
	keyUploadPrefix         = "upload.prefix"
	keyUploadCredentials    = "upload.credentials_file"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyDarkTheme            = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// The defaults are written to configPath if it does not exist yet.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyOutputDir, "music")
	v.SetDefault(keyOutputExt, "")
	v.SetDefault(keyCuttingStrategy, "lengths")
	v.SetDefault(keyCuttingOffset, "0s")
	v.SetDefault(keyCuttingConcurrency, 1)
	v.SetDefault(keyExtractorBin, "ffmpeg")
	v.SetDefault(keyExtractorArgs, "")
	v.SetDefault(keyReviewExcerptWindow, "10s")
	v.SetDefault(keyReviewResolution, 400)
	v.SetDefault(keyReviewNudge, "100ms")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyUploadEnabled, false)
	v.SetDefault(keyUploadBucket, "")
	v.SetDefault(keyUploadPrefix, "")
	v.SetDefault(keyUploadCredentials, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyDarkTheme, true)

	// answers from the first run prompt
	if c.Output.Dir != "" {
		v.Set(keyOutputDir, c.Output.Dir)
	}

	if c.Cutting.Strategy != "" {
		v.Set(keyCuttingStrategy, c.Cutting.Strategy)
	}

	if c.Cutting.Concurrency != 0 {
		v.Set(keyCuttingConcurrency, c.Cutting.Concurrency)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errDecodeConfig.Wrap(err)
	}

	return nil
}
