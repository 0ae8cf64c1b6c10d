// Package logging builds the logrus logger shared by the CLI, TUI and web
// server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// EnvDebug forces debug logging when it parses as true.
const EnvDebug = "DEBUG"

// New returns a text logger writing to out at level. An empty level means
// info. DEBUG=1 in the environment overrides level.
func New(level string, out io.Writer) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	if dbg, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil && dbg {
		lvl = log.DebugLevel
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// StoreFailure logs a failed store operation as a warning.
func StoreFailure(logger log.FieldLogger, op string, err error) {
	logger.WithFields(log.Fields{"op": op}).WithError(err).Warn("store operation failed")
}
