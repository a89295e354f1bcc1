// Package glog is the package-wide logging entry point. It wraps a single
// process-global logrus.Logger so every package logs through the same
// formatter and level, the way the source's quill logger was a single
// per-process instance threaded through constructors.
package glog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// L returns the process-wide logger, initialising it on first use with a
// text formatter and level taken from GRIDFIRE_LOG_LEVEL (falling back to
// Info).
func L() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		level := logrus.InfoLevel
		if s := os.Getenv("GRIDFIRE_LOG_LEVEL"); s != "" {
			if parsed, err := logrus.ParseLevel(s); err == nil {
				level = parsed
			}
		}
		logger.SetLevel(level)
	})
	return logger
}

// With returns an Entry pre-populated with a component field, mirroring
// the source's per-subsystem logger naming (e.g. "network", "solver").
func With(component string) *logrus.Entry {
	return L().WithField("component", component)
}
