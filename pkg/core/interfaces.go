package core

import "errors"

// ErrInvalidInput is returned when a scene component is constructed from unusable input
var ErrInvalidInput = errors.New("invalid input")

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NopLogger returns a logger that discards everything
func NopLogger() Logger {
	return nopLogger{}
}
