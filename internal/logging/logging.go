// Package logging adapts logrus to the calculation engine's minimal
// logger interface.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus logger behind the interface the engine logs to.
type Logger struct {
	log *logrus.Logger
}

// New creates a logger writing to out. Debug enables per-year engine
// trace output.
func New(out io.Writer, debug bool) *Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return &Logger{log: log}
}

func (l *Logger) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }
