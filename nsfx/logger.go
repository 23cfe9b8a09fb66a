package nsfx

import (
	"io"

	"github.com/0xalexb/hjarta-ns/nslog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// LoggerModule supplies a JSON *slog.Logger built from the given config and
// routes Fx's own lifecycle events through it, so applications assembling
// namespace modules get one logger for both the graph and their own code.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func LoggerModule(config nslog.LoggerConfig, w io.Writer) fx.Option {
	logger := nslog.NewLogger(config, w)

	return fx.Options(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(config),
		fx.Supply(logger),
	)
}
