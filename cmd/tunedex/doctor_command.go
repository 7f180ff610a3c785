package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunedex/internal/catalog"
	"tunedex/internal/config"
	"tunedex/internal/downloader"
)

func newDoctorCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check library health and external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				out := cmd.OutOrStdout()

				health, err := store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Library database: %s\n", health.DBPath)
				fmt.Fprintf(out, "Database exists: %s\n", yesNo(health.DatabaseExists))
				fmt.Fprintf(out, "tracks table present: %s\n", yesNo(health.TableExists))
				fmt.Fprintf(out, "Integrity check: %s\n", yesNo(health.IntegrityCheck))
				fmt.Fprintf(out, "Total tracks: %d\n", health.TotalTracks)

				fmt.Fprintf(out, "Search endpoint: %s\n", cfg.Search.Endpoint)

				failures := 0
				for _, status := range downloader.CheckBinaries(downloader.Requirements(cfg.Downloader.Command)) {
					if status.Available {
						fmt.Fprintf(out, "%s (%s): ok\n", status.Name, status.Command)
						continue
					}
					if !status.Optional {
						failures++
					}
					fmt.Fprintf(out, "%s (%s): %s\n", status.Name, status.Command, status.Detail)
				}

				if failures > 0 {
					fmt.Fprintln(out, "Some required tools are missing; downloads will be disabled.")
					return nil
				}
				fmt.Fprintln(out, "All checks passed.")
				return nil
			})
		},
	}
}
