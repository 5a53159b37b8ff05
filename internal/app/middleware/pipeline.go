package middleware

import (
	"context"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/queries"
)

type CommandMiddleware func(next commands.Bus) commands.Bus

type QueryMiddleware func(next queries.Bus) queries.Bus

// ChainCommands wraps base so that mws[0] sees each command first.
func ChainCommands(base commands.Bus, mws ...CommandMiddleware) commands.Bus {
	return chain(base, mws)
}

// ChainQueries is ChainCommands for the read side.
func ChainQueries(base queries.Bus, mws ...QueryMiddleware) queries.Bus {
	return chain(base, mws)
}

func chain[B any, M ~func(B) B](base B, mws []M) B {
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

type dispatchFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f dispatchFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

type askFunc func(ctx context.Context, q queries.Query) (any, error)

func (f askFunc) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}
