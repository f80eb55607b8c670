package log

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log struct singleton
type Log struct {
	AppName  string
	LogLevel int
	Logger   *logrus.Logger
}

var logger Log

var mapOfLogLevel = map[string]int{
	"DEBUG": 1,
	"WARN":  2,
	"ERROR": 3,
}

// InitLogger initialize logger from Viper
func InitLogger(v *viper.Viper) {
	levelStr := v.GetString("log.level")
	appName := v.GetString("app.name")

	logger = Log{
		AppName:  appName,
		LogLevel: mapOfLogLevel[levelStr],
		Logger:   newLogrusLogger(v),
	}
}

// GetLogger return singleton
func GetLogger() Log {
	return logger
}

// internal helper to create logrus instance
func newLogrusLogger(v *viper.Viper) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func (l Log) fields(context, scope, meta string) logrus.Fields {
	_, file, line, _ := runtime.Caller(2)
	return logrus.Fields{
		"service": l.AppName,
		"context": context,
		"scope":   scope,
		"meta":    meta,
		"at":      fmt.Sprintf("%s:%d", file, line),
	}
}

// Info logs normal progress events.
func (l Log) Info(context, message, scope, meta string) {
	if l.Logger == nil || l.LogLevel > 1 {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Info(message)
}

// Warn logs soft failures the caller deliberately swallows.
func (l Log) Warn(context, message, scope, meta string) {
	if l.Logger == nil || l.LogLevel > 2 {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Warn(message)
}

// Error logs failures reported to observability rather than the caller.
func (l Log) Error(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Error(message)
}
