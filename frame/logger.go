// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds a logger writing to out. The console format is meant for
// terminals, json for log collectors.
func NewLogger(cfg LoggingConfiguration, out io.Writer) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var writer io.Writer = zerolog.ConsoleWriter{Out: out}
	if cfg.Format == "json" {
		writer = out
	}
	return zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(level), nil
}
