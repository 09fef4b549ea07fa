package mirror

import (
	"fmt"
	"io"
	"log/slog"
)

// LevelSilent is above any level used by this module: a logger at LevelSilent
// never emits.
const LevelSilent = slog.LevelError + 100

// ParseLogLevel maps the user-facing log level names to slog levels.
func ParseLogLevel(name string) (slog.Level, error) {
	levels := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"info":   slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"silent": LevelSilent,
	}
	level, ok := levels[name]
	if !ok {
		return 0, fmt.Errorf("invalid log_level: %s", name)
	}
	return level, nil
}

// NewLogger returns a logger writing text records without timestamps to out.
func NewLogger(out io.Writer, levelName string) (*slog.Logger, error) {
	if levelName == "" {
		levelName = DefaultLogLevel
	}
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: removeTime,
	})), nil
}

func removeTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}
