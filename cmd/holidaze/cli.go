package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"holidaze/internal/infra/config"
	"holidaze/internal/infra/obs"
)

// withApplication runs fn against a fully wired application and tears it
// down afterwards. Used by the one-shot commands.
func withApplication(cmd *cobra.Command, fn func(ctx context.Context, app *application) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := obs.NewConsoleLogger(cmd.ErrOrStderr())

	ctx := cmd.Context()
	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Close(closeCtx)
	}()
	return fn(ctx, app)
}

func selectionFlags(cmd *cobra.Command, checkIn, checkOut *string) {
	cmd.Flags().StringVar(checkIn, "check-in", "", "current check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(checkOut, "check-out", "", "current check-out date (YYYY-MM-DD)")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
