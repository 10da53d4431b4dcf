// Package logging configures structured logging for the host core, in the
// idiom bacalhau uses for its own wazero-based embedding: zerolog, with an
// isatty-detected console writer for interactive use and a plain JSON
// writer otherwise.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wasmjit-omr/winter/internal/sandbox"
)

func init() {
	Configure()
}

// Configure (re)initializes the global logger from the WINTER_LOG_LEVEL and
// WINTER_LOG_FORMAT environment variables. WINTER_LOG_FORMAT=json forces
// structured JSON output even on a terminal; anything else picks a
// human-readable console writer when stderr is a TTY.
func Configure() {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	switch strings.ToLower(os.Getenv("WINTER_LOG_LEVEL")) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	isTerminal := isatty.IsTerminal(os.Stderr.Fd())
	format := strings.ToLower(os.Getenv("WINTER_LOG_FORMAT"))

	var writer io.Writer = os.Stderr
	if format != "json" && isTerminal {
		writer = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = os.Stderr
			cw.TimeFormat = "15:04:05.999"
		})
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}

// Sandbox returns a logger whose "sandbox" field carries s's ID.
func Sandbox(s *sandbox.Sandbox) zerolog.Logger {
	return log.With().Str("sandbox", s.ID().String()).Logger()
}
