package wfa

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// SetLogger replaces the logger used by the algorithms. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger Returns the logger used by the algorithms.
func Logger() *zap.Logger {
	return logger
}
