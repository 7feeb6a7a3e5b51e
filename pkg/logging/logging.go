// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup applies level and output to the standard logger. An empty file keeps
// stderr. The returned closer releases the log file, if any.
func Setup(level, file string) (io.Closer, error) {
	lvl := log.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: file == "",
		FullTimestamp:    file != "",
	})

	if file == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", file, err)
	}
	log.SetOutput(f)
	return f, nil
}

// Quiet routes logs to file, or discards them when file is empty. The TUI
// uses it so log lines never land on the alternate screen.
func Quiet(level, file string) (io.Closer, error) {
	if file != "" {
		return Setup(level, file)
	}
	closer, err := Setup(level, "")
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.Discard)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
