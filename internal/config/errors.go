package config

import "github.com/ayoisaiah/setsplit/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errDecodeConfig = &apperr.Error{
		Message: "decoding config file failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidCLIOffset = &apperr.Error{
		Message: "invalid offset %q",
	}

	errInvalidStrategy = &apperr.Error{
		Message: "unknown cutting strategy %q (must be lengths or timestamps)",
	}

	errInvalidConcurrency = &apperr.Error{
		Message: "concurrency must be between %d and %d",
	}

	errEmptyExtractor = &apperr.Error{
		Message: "extractor binary cannot be empty",
	}

	errInvalidWindow = &apperr.Error{
		Message: "review excerpt window must be positive, got %v",
	}

	errInvalidResolution = &apperr.Error{
		Message: "review resolution must be at least %d, got %d",
	}

	errMissingBucket = &apperr.Error{
		Message: "upload is enabled but no bucket is configured",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q (must be debug, info, warn or error)",
	}
)
