package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

// Factory returns the process default logger factory. It is what elements
// fall back to when no factory is injected.
func Factory() logging.LoggerFactory {
	return loggerFactory
}

func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}
