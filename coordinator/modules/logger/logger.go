package logger

import (
	"fmt"
)

type Logger interface {
	Log(format string, args ...interface{})
}

type logger struct {
	instanceName string
}

func NewLogger(instanceName string) Logger {
	return &logger{
		instanceName: instanceName,
	}
}

func (l *logger) Log(format string, args ...interface{}) {
	fmt.Printf("[%s] %s\n", l.instanceName, fmt.Sprintf(format, args...))
}
