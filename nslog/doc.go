// Package nslog provides structured logging support using Go's standard
// library log/slog: a JSON logger constructor and an in-memory Recorder
// handler used to observe the namespace engine's non-fatal deprecation
// diagnostics.
package nslog
