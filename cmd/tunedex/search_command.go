package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tunedex/internal/catalog"
	"tunedex/internal/config"
)

func newSearchCommand(cctx *commandContext) *cobra.Command {
	var links bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the remote catalog and save new tracks to the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("search query is empty")
			}

			return cctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				logger, err := cctx.fileLogger(cfg)
				if err != nil {
					return err
				}
				gateway := cctx.newGateway(cfg, store, logger)

				tracks, err := gateway.Search(cmd.Context(), query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(tracks) == 0 {
					fmt.Fprintf(out, "No music found for '%s'.\n", query)
					return nil
				}

				fmt.Fprintln(out, renderTrackTable(tracks))
				if links {
					for _, t := range tracks {
						fmt.Fprintln(out, t.Link)
					}
				}
				fmt.Fprintf(out, "Found %d results. New entries saved to your library.\n", len(tracks))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&links, "links", false, "Print a link for every result")
	return cmd
}
