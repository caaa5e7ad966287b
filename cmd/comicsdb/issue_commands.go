package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"comicsdb/internal/catalog"
	"comicsdb/internal/services"
	"comicsdb/internal/textutil"
)

func newIssueCommand(ctx *commandContext) *cobra.Command {
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Inspect issues",
	}
	issueCmd.AddCommand(newIssueListCommand(ctx))
	issueCmd.AddCommand(newIssueShowCommand(ctx))
	return issueCmd
}

func newIssueListCommand(ctx *commandContext) *cobra.Command {
	var (
		seriesSlug string
		month      string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues by store date",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := catalog.IssueFilter{Limit: limit}
			if month != "" {
				parsed, err := time.Parse("2006-01", month)
				if err != nil {
					return services.Wrap(services.ErrValidation, "issue", "list", "--month must be YYYY-MM", err)
				}
				filter.StoreMonth = parsed
			}
			return ctx.withStore(func(store *catalog.Store) error {
				if seriesSlug != "" {
					series, err := store.SeriesBySlug(cmd.Context(), seriesSlug)
					if err != nil {
						return err
					}
					if series == nil {
						return services.Wrap(services.ErrNotFound, "issue", "list", fmt.Sprintf("series %q", seriesSlug), nil)
					}
					filter.SeriesID = series.ID
				}
				issues, err := store.ListIssues(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, issues)
				}
				spec := tableSpec{
					headers: []string{"Slug", "Number", "Store Date", "Cover Date", "Price"},
					aligns:  []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight},
				}
				for _, issue := range issues {
					spec.add(issue.Slug, issue.Number, formatDate(issue.StoreDate), formatDate(issue.CoverDate), formatPrice(issue))
				}
				spec.footer = []string{fmt.Sprintf("%d issues", len(issues))}
				spec.print(cmd.OutOrStdout(), "No issues found.")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&seriesSlug, "series", "", "Series slug")
	cmd.Flags().StringVar(&month, "month", "", "Store month (YYYY-MM)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows")
	return cmd
}

func newIssueShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show SLUG",
		Short: "Show an issue with its credits, characters and teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				detail, err := store.IssueDetail(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if detail == nil {
					return services.Wrap(services.ErrNotFound, "issue", "show", fmt.Sprintf("issue %q", args[0]), nil)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, detail)
				}
				printIssueDetail(cmd.OutOrStdout(), detail, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}
}

func printIssueDetail(out io.Writer, detail *catalog.IssueDetail, colorize bool) {
	issue := detail.Issue
	for _, line := range renderSectionHeader(fmt.Sprintf("%s #%s", detail.Series.Label(), issue.Number), colorize) {
		fmt.Fprintln(out, line)
	}
	fields := [][2]string{
		{"Slug", issue.Slug},
		{"Cover date", formatDate(issue.CoverDate)},
		{"Store date", formatDate(issue.StoreDate)},
		{"Price", formatPrice(issue)},
		{"UPC", issue.UPC},
		{"Pages", pageCount(issue.PageCount)},
	}
	for _, f := range fields {
		if f[1] != "" {
			fmt.Fprintf(out, "%-12s %s\n", f[0]+":", f[1])
		}
	}
	if issue.Desc != "" {
		fmt.Fprintf(out, "\n%s\n", issue.Desc)
	}

	if len(detail.Credits) > 0 {
		fmt.Fprintln(out)
		spec := tableSpec{headers: []string{"Creator", "Roles"}}
		for _, credit := range detail.Credits {
			roles := make([]string, len(credit.Roles))
			for i, role := range credit.Roles {
				roles[i] = textutil.Title(role)
			}
			spec.add(credit.CreatorName, strings.Join(roles, ", "))
		}
		fmt.Fprintln(out, spec.render())
	}
	for _, group := range []struct {
		label string
		names []string
	}{
		{"Characters", detail.Characters},
		{"Teams", detail.Teams},
		{"Arcs", detail.Arcs},
	} {
		if len(group.names) > 0 {
			fmt.Fprintf(out, "%-12s %s\n", group.label+":", strings.Join(group.names, ", "))
		}
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(catalog.DateLayout)
}

func formatPrice(issue catalog.Issue) string {
	if issue.Price.IsZero() {
		return ""
	}
	return "$" + issue.Price.StringFixed(2)
}

func pageCount(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
