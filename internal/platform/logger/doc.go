// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, and carries request-scoped loggers through
// context.Context so trace IDs attached by middleware follow a request across
// handler, service, and store boundaries.
package logger
