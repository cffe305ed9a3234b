package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// NewLogger builds a logger for one log type ("app", "access", "error").
// With an empty dir it writes to stdout; otherwise to a daily rotated file
// under dir/logType kept for seven days.
func NewLogger(dir, logType, level string) (*logrus.Logger, error) {
	log := logrus.New()

	var out io.Writer = os.Stdout
	if dir != "" {
		logPath := filepath.Join(dir, logType)
		if err := os.MkdirAll(logPath, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir %s: %w", logPath, err)
		}
		writer, err := rotatelogs.New(
			filepath.Join(logPath, logType+".log.%Y-%m-%d"),
			rotatelogs.WithLinkName(filepath.Join(logPath, logType+".log")),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err != nil {
			return nil, fmt.Errorf("open rotating log %s: %w", logType, err)
		}
		out = writer
	}
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return f.Function, fmt.Sprintf("%s:%d", f.File, f.Line)
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log, nil
}

// Discard is a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
