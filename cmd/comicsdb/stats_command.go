package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"comicsdb/internal/catalog"
)

var statsOrder = []string{"publishers", "series", "issues", "creators", "characters", "teams", "arcs", "roles", "credits"}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stats)
				}
				spec := tableSpec{headers: []string{"Table", "Rows"}, aligns: []columnAlignment{alignLeft, alignRight}}
				for _, table := range statsOrder {
					spec.add(table, strconv.Itoa(stats[table]))
				}
				spec.print(cmd.OutOrStdout(), "Catalog is empty.")
				return nil
			})
		},
	}
}
