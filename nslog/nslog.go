package nslog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level string
}

// NewLogger creates a new slog.Logger with JSON handler and the specified
// output. The level is parsed from the config; defaults to INFO if invalid
// or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	level := parseLevel(config.Level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Record is one captured log entry.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that captures records in memory. It is the
// opt-in observation point for the namespace engine's deprecation
// diagnostics: install it (alone or fanned out next to a real handler) and
// read the promotions back with Promotions.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Enabled implements slog.Handler; a recorder captures every level.
func (r *Recorder) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	return r.capture(rec, nil)
}

func (r *Recorder) capture(rec slog.Record, bound []slog.Attr) error {
	attrs := make(map[string]any, len(bound)+rec.NumAttrs())

	for _, attr := range bound {
		attrs[attr.Key] = attr.Value.Any()
	}

	rec.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()

		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, Record{
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   attrs,
	})

	return nil
}

// WithAttrs implements slog.Handler. Pre-bound attributes are folded into
// every record the derived handler captures; all captures land in this
// recorder's shared record list.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return r
	}

	return &boundRecorder{recorder: r, attrs: attrs}
}

// WithGroup implements slog.Handler. Groups are flattened: attributes keep
// their own keys with no group prefix.
func (r *Recorder) WithGroup(_ string) slog.Handler {
	return r
}

// boundRecorder is a Recorder view carrying pre-bound attributes from
// WithAttrs. Records flow into the underlying recorder.
type boundRecorder struct {
	recorder *Recorder
	attrs    []slog.Attr
}

// Enabled implements slog.Handler.
func (b *boundRecorder) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (b *boundRecorder) Handle(_ context.Context, rec slog.Record) error {
	return b.recorder.capture(rec, b.attrs)
}

// WithAttrs implements slog.Handler.
func (b *boundRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)
	merged = append(merged, attrs...)

	return &boundRecorder{recorder: b.recorder, attrs: merged}
}

// WithGroup implements slog.Handler.
func (b *boundRecorder) WithGroup(_ string) slog.Handler {
	return b
}

// Records returns a copy of everything captured so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]Record, len(r.records))
	copy(records, r.records)

	return records
}

// Promotions returns the captured string-promotion deprecation
// diagnostics.
func (r *Recorder) Promotions() []Record {
	var promotions []Record

	for _, record := range r.Records() {
		if strings.Contains(record.Message, "deprecated promotion") {
			promotions = append(promotions, record)
		}
	}

	return promotions
}
