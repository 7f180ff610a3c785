package main

import (
	"github.com/spf13/cobra"

	"tunedex/internal/catalog"
	"tunedex/internal/config"
	"tunedex/internal/downloader"
	"tunedex/internal/state"
	"tunedex/internal/tui"
)

func runInterface(cmd *cobra.Command, cctx *commandContext) error {
	return cctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
		logger, err := cctx.fileLogger(cfg)
		if err != nil {
			return err
		}

		gateway := cctx.newGateway(cfg, store, logger)
		invoker := downloader.New(cfg.Downloader.Command, logger)

		var opts []state.Option
		if cfg.Downloader.Exclusive {
			opts = append(opts, state.WithExclusiveDownloads())
		}
		coord := state.New(store, gateway, invoker, logger, opts...)

		ctx := cmd.Context()
		if _, err := coord.Start(ctx); err != nil {
			return err
		}
		return tui.Run(ctx, coord, invoker, logger)
	})
}
