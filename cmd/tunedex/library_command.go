package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunedex/internal/catalog"
	"tunedex/internal/config"
)

func newLibraryCommand(cctx *commandContext) *cobra.Command {
	var links bool

	cmd := &cobra.Command{
		Use:   "library",
		Short: "List every track stored in the local library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				tracks, err := store.LoadAll(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(tracks) == 0 {
					fmt.Fprintln(out, "Your library is empty. Run a search to start collecting.")
					return nil
				}

				fmt.Fprintln(out, renderTrackTable(tracks))
				if links {
					for _, t := range tracks {
						fmt.Fprintln(out, t.Link)
					}
				}
				fmt.Fprintf(out, "Displaying %d songs from your local library.\n", len(tracks))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&links, "links", false, "Print a link for every track")
	return cmd
}
