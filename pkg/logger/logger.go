package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	base        = zap.NewNop()
	serviceName = "default"
)

// Init installs the process logger. Before Init everything goes to a nop
// logger, which keeps library use (and tests) quiet.
func Init(l *zap.Logger) {
	if l != nil {
		base = l
	}
}

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

func Info(format string, args ...interface{}) {
	base.With(
		zap.String("service", serviceName),
	).Info(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	base.With(
		zap.String("service", serviceName),
	).Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	base.With(
		zap.String("service", serviceName),
	).Fatal(fmt.Sprintf(format, args...))
}
