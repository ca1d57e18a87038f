package config

import (
	"github.com/rshade/portalgun/internal/logging"
)

// ToLoggingConfig converts the logging section to a logging.Config. A
// configured file switches the output to that file; otherwise logs go to
// stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global configuration's logging
// section. Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
