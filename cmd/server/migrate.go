package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func runMigrate(cmd *cobra.Command, args []string) error {
	log := newLogger(cfg)
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(log)

	if err := b.migrate(ctx); err != nil {
		return err
	}
	log.Info().Msg("migrations complete")
	return nil
}
