package middleware

import (
	"context"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/outbox"
)

// OutboxFlush hands the selection events buffered by a command to the
// broker after the handler returns without error. A failed command leaves
// its records buffered until the next flush.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		return dispatchFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return res, box.Flush(ctx)
		})
	}
}
