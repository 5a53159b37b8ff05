package middleware

import (
	"context"
	"log/slog"
	"time"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/queries"
)

func CommandLogging(logger *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		return dispatchFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := next.Dispatch(ctx, cmd)
			logResult(ctx, logger, "command", cmd.Key(), start, err)
			return res, err
		})
	}
}

func QueryLogging(logger *slog.Logger) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		return askFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := next.Ask(ctx, q)
			logResult(ctx, logger, "query", q.Key(), start, err)
			return res, err
		})
	}
}

func logResult(ctx context.Context, logger *slog.Logger, kind, key string, start time.Time, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.WarnContext(ctx, kind+" failed", "key", key, "duration", time.Since(start), "error", err)
		return
	}
	logger.DebugContext(ctx, kind+" handled", "key", key, "duration", time.Since(start))
}
