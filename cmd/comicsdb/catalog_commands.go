package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"comicsdb/internal/catalog"
	"comicsdb/internal/services"
)

func newPublisherCommand(ctx *commandContext) *cobra.Command {
	publisherCmd := &cobra.Command{
		Use:   "publisher",
		Short: "Manage publishers",
	}

	var founded int
	var desc string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a publisher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				publisher := &catalog.Publisher{Name: strings.TrimSpace(args[0]), Founded: founded, Desc: desc}
				if err := store.CreatePublisher(cmd.Context(), publisher); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, publisher)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added publisher %s (%s)\n", publisher.Name, publisher.Slug)
				return nil
			})
		},
	}
	addCmd.Flags().IntVar(&founded, "founded", 0, "Year the publisher was founded")
	addCmd.Flags().StringVar(&desc, "desc", "", "Description")
	publisherCmd.AddCommand(addCmd)
	return publisherCmd
}

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Manage series",
	}
	seriesCmd.AddCommand(newSeriesAddCommand(ctx))
	seriesCmd.AddCommand(newSeriesListCommand(ctx))
	return seriesCmd
}

func newSeriesAddCommand(ctx *commandContext) *cobra.Command {
	var (
		series    catalog.Series
		publisher string
		status    string
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if series.YearBegan <= 0 {
				return services.Wrap(services.ErrValidation, "series", "add", "--year is required", nil)
			}
			parsed, err := catalog.ParseSeriesStatus(status)
			if err != nil {
				return services.Wrap(services.ErrValidation, "series", "add", "", err)
			}
			series.Name = strings.TrimSpace(args[0])
			series.Status = parsed
			return ctx.withStore(func(store *catalog.Store) error {
				if publisher != "" {
					p, err := store.PublisherBySlug(cmd.Context(), publisher)
					if err != nil {
						return err
					}
					if p == nil {
						return services.Wrap(services.ErrNotFound, "series", "add", fmt.Sprintf("publisher %q", publisher), nil)
					}
					series.PublisherID = p.ID
				}
				if err := store.CreateSeries(cmd.Context(), &series); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, series)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added series %s (%s)\n", series.Label(), series.Slug)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&series.YearBegan, "year", 0, "Year the series began")
	cmd.Flags().IntVar(&series.YearEnd, "year-end", 0, "Year the series ended")
	cmd.Flags().IntVar(&series.Volume, "volume", 0, "Volume number")
	cmd.Flags().StringVar(&series.SortName, "sort-name", "", "Name used for sorting (defaults to the name)")
	cmd.Flags().StringVar(&series.Desc, "desc", "", "Description")
	cmd.Flags().StringVar(&publisher, "publisher", "", "Publisher slug")
	cmd.Flags().StringVar(&status, "status", "ongoing", "Status: cancelled, completed, hiatus or ongoing")
	return cmd
}

func newSeriesListCommand(ctx *commandContext) *cobra.Command {
	var query catalog.SeriesQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List series, optionally filtered by name and start year",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				results, err := store.SearchSeries(cmd.Context(), query)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, results)
				}
				spec := tableSpec{
					headers: []string{"ID", "Series", "Slug", "Status"},
					aligns:  []columnAlignment{alignRight},
				}
				for _, s := range results {
					spec.add(strconv.FormatInt(s.ID, 10), s.Label(), s.Slug, s.Status.String())
				}
				spec.print(cmd.OutOrStdout(), "No series found.")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&query.Name, "name", "", "Name fragment (case and accent insensitive)")
	cmd.Flags().IntVar(&query.YearBegan, "year", 0, "Start year")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "Maximum rows")
	return cmd
}

func newCreatorCommand(ctx *commandContext) *cobra.Command {
	creatorCmd := &cobra.Command{
		Use:   "creator",
		Short: "Manage creators",
	}

	var slug, desc string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a creator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				creator := &catalog.Creator{Name: strings.TrimSpace(args[0]), Slug: strings.TrimSpace(slug), Desc: desc}
				if err := store.CreateCreator(cmd.Context(), creator); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, creator)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added creator %s (%s)\n", creator.Name, creator.Slug)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&slug, "slug", "", "Explicit slug (generated from the name by default)")
	addCmd.Flags().StringVar(&desc, "desc", "", "Description")

	var search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List creators",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				var fragments []string
				if search != "" {
					fragments = strings.Fields(search)
				}
				creators, err := store.SearchCreators(cmd.Context(), fragments...)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, creators)
				}
				spec := tableSpec{headers: []string{"ID", "Name", "Slug"}, aligns: []columnAlignment{alignRight}}
				for _, c := range creators {
					spec.add(strconv.FormatInt(c.ID, 10), c.Name, c.Slug)
				}
				spec.print(cmd.OutOrStdout(), "No creators found.")
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "Words that must all appear in the name")

	creatorCmd.AddCommand(addCmd, listCmd)
	return creatorCmd
}

// newEntityCommand builds the add command for characters, teams and arcs.
func newEntityCommand(ctx *commandContext, kind catalog.EntityKind) *cobra.Command {
	parent := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Manage %ss", kind),
	}

	var desc string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: fmt.Sprintf("Add a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				entity := &catalog.Entity{Name: strings.TrimSpace(args[0]), Desc: desc}
				if err := store.CreateEntity(cmd.Context(), kind, entity); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entity)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", kind, entity.Name, entity.Slug)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&desc, "desc", "", "Description")
	parent.AddCommand(addCmd)
	return parent
}

func newRoleCommand(ctx *commandContext) *cobra.Command {
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Manage credit roles",
	}

	var notes string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a credit role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				role := &catalog.Role{Name: args[0], Notes: notes}
				if err := store.CreateRole(cmd.Context(), role); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, role)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added role %s\n", role.Name)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&notes, "notes", "", "Notes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List credit roles in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				roles, err := store.ListRoles(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, roles)
				}
				spec := tableSpec{headers: []string{"ID", "Role", "Notes"}, aligns: []columnAlignment{alignRight}}
				for _, r := range roles {
					spec.add(strconv.FormatInt(r.ID, 10), r.Name, r.Notes)
				}
				spec.print(cmd.OutOrStdout(), "No roles defined.")
				return nil
			})
		},
	}

	roleCmd.AddCommand(addCmd, listCmd)
	return roleCmd
}
