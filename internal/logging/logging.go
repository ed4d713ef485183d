// Package logging builds the zerolog logger used by the quadpack command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arloliu/quadpack/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// nopCloser is returned when no file output is configured.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing to out and, when cfg.File is set, to a
// rotating log file.
//
// With format "auto" the console writer is used when out is a terminal and
// JSON lines otherwise. The file always receives JSON lines.
//
// Returns:
//   - zerolog.Logger: configured logger
//   - io.Closer: closes the log file, a no-op without one
//   - error: an invalid level or format
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	console, err := consoleWriter(cfg.Format, out)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var closer io.Closer = nopCloser{}
	writer := console
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writer = zerolog.MultiLevelWriter(console, file)
		closer = file
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	return logger, closer, nil
}

func consoleWriter(format string, out io.Writer) (io.Writer, error) {
	switch format {
	case config.LogFormatJSON:
		return out, nil
	case config.LogFormatConsole:
		if IsTerminal(out) {
			return styledConsole(out), nil
		}

		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}, nil
	case config.LogFormatAuto, "":
		if IsTerminal(out) {
			return styledConsole(out), nil
		}

		return out, nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
