// Package logging builds the logrus logger shared by the client and the CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

// AutoFile selects the per-day log file under the user data directory.
const AutoFile = "auto"

const appDirName = "StrazakDesktopApp"

// Level maps a configured level name onto logrus. Unknown names fall back to
// warn.
func Level(name string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.WarnLevel
	}
}

// New returns a logger writing to stderr, or to file when one is configured.
// The returned closer must be called on shutdown; it is a no-op for stderr.
func New(level, file string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(Level(level))
	if file == "" {
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		return logger, nopCloser{}, nil
	}
	if file == AutoFile {
		file = DailyFile(time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return nil, nil, errors.Wrap(err, "create log dir")
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.WithField("file", file).Debug("logging to file")
	return logger, f, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// DailyFile returns app_YYYYMMDD.log inside the user data directory.
func DailyFile(now time.Time) string {
	return filepath.Join(logDir(), "app_"+now.Format("20060102")+".log")
}

func logDir() string {
	if dir := os.Getenv("APPDATA"); dir != "" {
		return filepath.Join(dir, appDirName, "logs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName, "logs")
	}
	return filepath.Join(home, ".local", "share", appDirName, "logs")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
