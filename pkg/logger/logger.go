package logger

import (
	"fmt"
	"io"
	"os"
	"statuspage/config"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const prodEnv string = "production"

// Init builds the process logger and installs it as the zerolog global.
func Init(cfg *config.Config) *zerolog.Logger {
	l := New(cfg.Env, cfg.ServiceName, os.Stdout)
	log.Logger = l
	return &l
}

// New returns JSON output in production and a coloured console writer elsewhere.
func New(env, service string, out io.Writer) zerolog.Logger {
	switch env {
	case prodEnv:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var base zerolog.Logger
	if env == prodEnv {
		base = zerolog.New(out)
	} else {
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			PartsOrder: []string{
				"time", "level", "caller", "service", "env", "message", "err",
			},
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("[%s]", i))
			},
			FormatCaller: func(caller any) string {
				return fmt.Sprintf("(%s)", caller)
			},
		})
	}

	ctx := base.With().
		Timestamp().
		Str("service", service).
		Str("env", env)

	// caller info only outside production
	if env != prodEnv {
		ctx = ctx.Caller()
	}

	return ctx.Logger()
}
