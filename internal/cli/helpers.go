package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/tally/internal/logging"
	"github.com/aretw0/tally/pkg/domain"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout display output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPress: func(ctx context.Context, e *domain.PressEvent) {
			logger.Debug("Press", "label", e.Label, "display", e.Display)
		},
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			logger.Debug("Resolve", "operator", e.Operator, "left", e.Left, "right", e.Right, "result", e.Result)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.Debug("Press Error", "kind", e.Kind, "err", e.Err)
		},
	}
}
