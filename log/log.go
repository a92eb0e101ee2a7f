// Package log writes diagnostics to a daily file under the config directory.
// Nothing is written unless logs.write is set.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/seekscript/seekscript/filesystem"
	"github.com/seekscript/seekscript/key"
	"github.com/seekscript/seekscript/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// std receives every entry. It discards them until Setup enables logging.
var std = discarding()

func discarding() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		std = discarding()
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	file, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetFormatter(formatter(viper.GetBool(key.LogsJson)))

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	std = logger
	return nil
}

func formatter(asJson bool) logrus.Formatter {
	if asJson {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
}

// For returns a logger tagged with the given component name.
// Components receive it through their options so tests can substitute their own.
func For(component string) logrus.FieldLogger {
	return std.WithField("component", component)
}

func Error(args ...any) {
	std.Error(args...)
}

func Errorf(format string, args ...any) {
	std.Errorf(format, args...)
}

func Warnf(format string, args ...any) {
	std.Warnf(format, args...)
}

func Info(args ...any) {
	std.Info(args...)
}

func Infof(format string, args ...any) {
	std.Infof(format, args...)
}

func Debugf(format string, args ...any) {
	std.Debugf(format, args...)
}

func Tracef(format string, args ...any) {
	std.Tracef(format, args...)
}
