package cardstencil

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured log fields.
type Fields = logrus.Fields

var (
	globalLogger     *logrus.Logger
	globalLoggerOnce sync.Once
	globalLoggerMu   sync.RWMutex
)

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		config := GetGlobalConfig()
		logger := NewLogger(os.Stderr, config.LogLevel)
		globalLoggerMu.Lock()
		globalLogger = logger
		globalLoggerMu.Unlock()
	})
}

// NewLogger returns a logrus logger writing to w at the named level.
func NewLogger(w io.Writer, level string) *logrus.Logger {
	if w == nil {
		w = io.Discard
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	applyLevel(logger, level)
	return logger
}

func applyLevel(logger *logrus.Logger, level string) {
	if level == "off" {
		// nothing in this package logs at panic level
		logger.SetLevel(logrus.PanicLevel)
		return
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// SetLogger replaces the package logger.
func SetLogger(logger *logrus.Logger) {
	initGlobalLogger()
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// GetLogger returns the package logger.
func GetLogger() *logrus.Logger {
	initGlobalLogger()
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// IsDebugMode reports whether logger emits debug entries. Callers use it to
// skip building field sets on the hot path.
func IsDebugMode(logger *logrus.Logger) bool {
	return logger != nil && logger.IsLevelEnabled(logrus.DebugLevel)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

func WithFields(fields Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// UpdateLoggerFromConfig updates the global logger based on the current global configuration
func UpdateLoggerFromConfig() {
	config := GetGlobalConfig()
	applyLevel(GetLogger(), config.LogLevel)
}
