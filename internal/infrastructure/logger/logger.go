package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, encoding and destination of the process logger.
type Config struct {
	Level     string // zerolog level name; empty or unknown means info
	Format    string // "json" (default) or "console"
	Component string // value of the "component" field, "server" if empty
	Output    io.Writer
}

// New builds the root logger. Every event carries service=gocalc and the
// configured component.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Output != nil {
		w = cfg.Output
	}

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.Output != nil,
		}
	}

	component := cfg.Component
	if component == "" {
		component = "server"
	}

	return zerolog.New(w).
		Level(levelOf(cfg.Level)).
		With().
		Timestamp().
		Str("service", "gocalc").
		Str("component", component).
		Logger()
}

func levelOf(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
