// Package logging configures the global zerolog logger. Importing it lowers the
// default level to info, so the per-decision debug lines of the engines stay
// quiet until a program asks for them through Setup.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultLevel = zerolog.InfoLevel

func init() {
	zerolog.SetGlobalLevel(DefaultLevel)
}

// Configures the global zerolog logger used by every package.
// 'format' is either "console" (human readable) or "json".
func Setup(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	if w == nil {
		w = os.Stderr
	}

	switch format {
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return errors.Errorf("unknown log format %q", format)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
