package dioverify

import (
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

// ConfigureLogging sets up the global default logger with a TextHandler writing
// to stdout. The level comes from DIOVERIFY_LOG_LEVEL (debug, info, warn, error,
// any case, with optional offsets such as "warn+2"); unset or unparsable values
// mean Info.
func ConfigureLogging() {
	logLevel.Set(parseLogLevel(os.Getenv("DIOVERIFY_LOG_LEVEL")))

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel sets the logging level for the logger configured by ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

func parseLogLevel(s string) slog.Level {
	var l slog.Level
	if s == "" || l.UnmarshalText([]byte(s)) != nil {
		return slog.LevelInfo
	}
	return l
}
