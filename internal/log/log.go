// Package log provides the shared zap-based logger for the grahas binaries.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	baseLogger *zap.Logger
	sugar      *zap.SugaredLogger
)

// Init initializes the package-level logger. Debug selects the development
// encoder with debug-level output; otherwise production JSON at info level.
func Init(debug bool) error {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		logger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}
	baseLogger = logger
	sugar = logger.Sugar()
	return nil
}

func ensure() *zap.SugaredLogger {
	if sugar == nil {
		baseLogger, _ = zap.NewProduction(zap.AddCallerSkip(1))
		sugar = baseLogger.Sugar()
	}
	return sugar
}

// GetZapLogger returns the base zap logger for callers that need the
// structured API directly.
func GetZapLogger() *zap.Logger {
	ensure()
	return baseLogger
}

// GetSugaredLogger returns the sugared logger instance.
func GetSugaredLogger() *zap.SugaredLogger {
	return ensure()
}

// Sync flushes any buffered log entries.
func Sync() {
	if sugar != nil {
		sugar.Sync()
	}
}

func Debug(args ...interface{})                       { ensure().Debug(args...) }
func Debugf(template string, args ...interface{})     { ensure().Debugf(template, args...) }
func Debugw(msg string, keysAndValues ...interface{}) { ensure().Debugw(msg, keysAndValues...) }
func Info(args ...interface{})                        { ensure().Info(args...) }
func Infof(template string, args ...interface{})      { ensure().Infof(template, args...) }
func Infow(msg string, keysAndValues ...interface{})  { ensure().Infow(msg, keysAndValues...) }
func Warn(args ...interface{})                        { ensure().Warn(args...) }
func Warnf(template string, args ...interface{})      { ensure().Warnf(template, args...) }
func Warnw(msg string, keysAndValues ...interface{})  { ensure().Warnw(msg, keysAndValues...) }
func Error(args ...interface{})                       { ensure().Error(args...) }
func Errorf(template string, args ...interface{})     { ensure().Errorf(template, args...) }
func Errorw(msg string, keysAndValues ...interface{}) { ensure().Errorw(msg, keysAndValues...) }
func Fatal(args ...interface{})                       { ensure().Fatal(args...) }
func Fatalf(template string, args ...interface{})     { ensure().Fatalf(template, args...) }
