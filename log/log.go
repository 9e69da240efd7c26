package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xeptore/albumfetch/config"
	"github.com/xeptore/albumfetch/constants"
)

func FromConfig(conf config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(conf.Level)
	if nil != err {
		panic("invalid logging level: " + conf.Level)
	}

	return newLogger(os.Stderr, conf.Format).Level(level)
}

func NewDefault() zerolog.Logger {
	return newLogger(os.Stderr, "pretty").Level(zerolog.InfoLevel)
}

func newLogger(out io.Writer, format string) zerolog.Logger {
	switch strings.ToLower(format) {
	case "json":
	case "pretty":
		out = zerolog.ConsoleWriter{ //nolint:exhaustruct
			Out:          out,
			TimeFormat:   time.RFC3339,
			TimeLocation: time.UTC,
		}
	default:
		panic("invalid logging format: " + format)
	}

	return zerolog.
		New(out).
		Hook(&stackHook{}).
		With().
		Timestamp().
		Str("version", constants.Version).
		Str("compile_time", constants.CompileTime).
		Logger()
}
