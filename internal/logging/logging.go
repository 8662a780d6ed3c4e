// Package logging holds the process wide logger, shared
// by the parsers, the drawables and the command line tools.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "okavd",
			Level:           log.WarnLevel,
		})
	})
	return singleton
}

// Logger returns the shared logger.
func Logger() *log.Logger { return get() }

// SetVerbose switches between the debug and the warn levels.
func SetVerbose(verbose bool) {
	if verbose {
		get().SetLevel(log.DebugLevel)
	} else {
		get().SetLevel(log.WarnLevel)
	}
}

// SetOutput redirects the logs, mostly useful in tests.
func SetOutput(w io.Writer) { get().SetOutput(w) }

func Debugf(msg string, args ...interface{}) {
	get().Debugf(msg, args...)
}

func Infof(msg string, args ...interface{}) {
	get().Infof(msg, args...)
}

func Warnf(msg string, args ...interface{}) {
	get().Warnf(msg, args...)
}

func Errorf(msg string, args ...interface{}) {
	get().Errorf(msg, args...)
}
