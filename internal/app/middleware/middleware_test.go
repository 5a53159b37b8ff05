package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/outbox"
	"holidaze/internal/app/queries"
)

type noteCommand struct{ Text string }

func (noteCommand) Key() string { return "test.note" }

type noteQuery struct{}

func (noteQuery) Key() string { return "test.note_query" }

type countingOutbox struct{ flushes int }

func (c *countingOutbox) Add(ctx context.Context, rec outbox.EventRecord) error { return nil }
func (c *countingOutbox) Flush(ctx context.Context) error {
	c.flushes++
	return nil
}

var errEmpty = errors.New("empty text")

type textValidator struct{}

func (textValidator) Validate(ctx context.Context, msg any) error {
	if n, ok := msg.(noteCommand); ok && n.Text == "" {
		return errEmpty
	}
	return nil
}

func commandBus(t *testing.T, fail bool) *commands.InMemoryBus {
	t.Helper()
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler[noteCommand, string](bus, commands.HandlerFunc[noteCommand, string](func(ctx context.Context, cmd noteCommand) (string, error) {
		if fail {
			return "", errors.New("handler failed")
		}
		return cmd.Text, nil
	}))
	return bus
}

func TestChainCommands_OrderAndFlush(t *testing.T) {
	box := &countingOutbox{}
	var trace []string
	tag := func(name string) CommandMiddleware {
		return func(next commands.Bus) commands.Bus {
			return dispatchFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
				trace = append(trace, name)
				return next.Dispatch(ctx, cmd)
			})
		}
	}

	bus := ChainCommands(commandBus(t, false), tag("outer"), tag("inner"), Validation(textValidator{}), OutboxFlush(box))
	got, err := commands.Dispatch[noteCommand, string](context.Background(), bus, noteCommand{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	assert.Equal(t, []string{"outer", "inner"}, trace)
	assert.Equal(t, 1, box.flushes)

	_, err = commands.Dispatch[noteCommand, string](context.Background(), bus, noteCommand{})
	assert.ErrorIs(t, err, errEmpty)
	assert.Equal(t, 1, box.flushes, "rejected commands do not flush")
}

func TestOutboxFlush_SkippedOnHandlerError(t *testing.T) {
	box := &countingOutbox{}
	bus := ChainCommands(commandBus(t, true), OutboxFlush(box))
	_, err := commands.Dispatch[noteCommand, string](context.Background(), bus, noteCommand{Text: "x"})
	assert.Error(t, err)
	assert.Zero(t, box.flushes)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bus := ChainCommands(commandBus(t, true), CommandLogging(logger))
	_, _ = commands.Dispatch[noteCommand, string](context.Background(), bus, noteCommand{Text: "x"})
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), "key=test.note")

	qbus := queries.NewInMemoryBus()
	queries.RegisterHandler[noteQuery, int](qbus, queries.HandlerFunc[noteQuery, int](func(ctx context.Context, q noteQuery) (int, error) {
		return 1, nil
	}))
	buf.Reset()
	chained := ChainQueries(qbus, QueryLogging(logger), QueryValidation(textValidator{}))
	got, err := queries.Ask[noteQuery, int](context.Background(), chained, noteQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Contains(t, buf.String(), "query handled")
}
