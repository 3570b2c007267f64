package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	log = New(os.Stderr)
}

// New builds a console logger writing to w at error level. Stdout is never
// used by default because the MCP server speaks its protocol there.
func New(w io.Writer) zerolog.Logger {
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		Level(zerolog.ErrorLevel).
		With().
		Timestamp().
		Logger()
}

func GetLogger() *zerolog.Logger {
	return &log
}

// SetLogLevel maps a -v count onto a level: 1=warn, 2=info, 3=debug, 4+=trace.
func SetLogLevel(verboseCount int) {
	var level zerolog.Level
	switch {
	case verboseCount == 1:
		level = zerolog.WarnLevel
	case verboseCount == 2:
		level = zerolog.InfoLevel
	case verboseCount == 3:
		level = zerolog.DebugLevel
	case verboseCount >= 4:
		level = zerolog.TraceLevel
	default:
		level = zerolog.ErrorLevel
	}
	log = log.Level(level)
}

// SetLevelName sets the level from its name ("debug", "info", ...).
func SetLevelName(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", name, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.ErrorLevel
	}
	log = log.Level(level)
	return nil
}
