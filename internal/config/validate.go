package config

import (
	"log/slog"
	"slices"
	"strings"
)

var (
	validStrategies = []string{"lengths", "timestamps"}

	minConcurrency = 1
	maxConcurrency = 16

	minResolution = 10
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateCutting(); err != nil {
		return err
	}

	if err := c.validateReview(); err != nil {
		return err
	}

	if c.Upload.Enabled && strings.TrimSpace(c.Upload.Bucket) == "" {
		return errMissingBucket
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// validateCutting validates the CuttingConfig.
func (c *Config) validateCutting() error {
	if !slices.Contains(validStrategies, c.Cutting.Strategy) {
		return errInvalidStrategy.Fmt(c.Cutting.Strategy)
	}

	if c.Cutting.Concurrency < minConcurrency ||
		c.Cutting.Concurrency > maxConcurrency {
		return errInvalidConcurrency.Fmt(minConcurrency, maxConcurrency)
	}

	if strings.TrimSpace(c.Extractor.Bin) == "" {
		return errEmptyExtractor
	}

	return nil
}

// validateReview validates the ReviewConfig.
func (c *Config) validateReview() error {
	if c.Review.ExcerptWindow <= 0 {
		return errInvalidWindow.Fmt(c.Review.ExcerptWindow)
	}

	if c.Review.Resolution < minResolution {
		return errInvalidResolution.Fmt(minResolution, c.Review.Resolution)
	}

	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Log.Level))
	if err != nil {
		return level, errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return level, nil
}
