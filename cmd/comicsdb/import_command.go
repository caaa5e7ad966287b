package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"comicsdb/internal/catalog"
	"comicsdb/internal/importer"
	"comicsdb/internal/marvel"
	"comicsdb/internal/preflight"
	"comicsdb/internal/prompt"
	"comicsdb/internal/services"
)

type importOptions struct {
	date      string
	dateRange string
	file      string
	creators  bool
	auto      bool
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import upcoming comics from the Marvel API or a listing file",
		Long: `Import fetches comic listings for a period and reconciles each one against
the catalog: the title is parsed into series and number, the series is chosen
from catalog matches, and the issue is created or its empty fields filled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "Date period to query (lastWeek, thisWeek, nextWeek, thisMonth)")
	cmd.Flags().StringVar(&opts.dateRange, "range", "", "Date range to query (e.g. 2013-01-01,2013-01-02)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read listings from a JSON file instead of the Marvel API")
	cmd.Flags().BoolVar(&opts.creators, "creators", false, "Add creator credits to new issues")
	cmd.Flags().BoolVar(&opts.auto, "auto", false, "Never prompt: accept sole matches and skip ambiguous ones")
	return cmd
}

func runImport(cmd *cobra.Command, ctx *commandContext, opts importOptions) error {
	out := cmd.OutOrStdout()
	if opts.date == "" && opts.dateRange == "" && opts.file == "" {
		fmt.Fprintln(out, "No month requested. Exiting...")
		return nil
	}
	query, err := importer.NewQuery(opts.date, opts.dateRange)
	if err != nil {
		return err
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	lock := flock.New(cfg.ImportLockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another import is running (lock %s)", cfg.ImportLockPath())
	}
	defer func() { _ = lock.Unlock() }()

	return ctx.withStore(func(store *catalog.Store) error {
		if check := preflight.CheckEditorCredit(cmd.Context(), store, cfg.Import); !check.Passed {
			return services.Wrap(services.ErrConfiguration, "import", "preflight", check.Detail, nil)
		}

		var source importer.Source
		if opts.file != "" {
			source = importer.FileSource{Path: opts.file}
		} else {
			client, err := marvel.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			source = client
		}

		records, err := source.Fetch(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("fetch %s listings: %w", source.Name(), err)
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "No comics found for the requested period.")
			return nil
		}

		reconciler := importer.New(store, chooserFor(cmd, opts.auto), importer.OptionsFromConfig(cfg, opts.creators), logger)
		summary, runErr := reconciler.Run(cmd.Context(), source.Name(), records)
		if ctx.jsonOutput() {
			if err := writeJSON(cmd, newSummaryView(summary)); err != nil {
				return err
			}
		} else {
			printImportSummary(out, summary, shouldColorize(out))
		}
		if runErr != nil {
			return fmt.Errorf("import stopped after %d of %d records: %w", len(summary.Results), len(records), runErr)
		}
		return nil
	})
}

func chooserFor(cmd *cobra.Command, auto bool) importer.Chooser {
	if auto {
		return importer.AutoChooser{}
	}
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok {
		return prompt.New(file, cmd.ErrOrStderr())
	}
	return prompt.NewLineChooser(in, cmd.ErrOrStderr())
}

type resultView struct {
	Title    string   `json:"title"`
	Outcome  string   `json:"outcome"`
	Series   string   `json:"series,omitempty"`
	Issue    string   `json:"issue,omitempty"`
	Filled   []string `json:"filled,omitempty"`
	Credits  int      `json:"credits,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type summaryView struct {
	RunID   string         `json:"run_id"`
	Source  string         `json:"source"`
	Elapsed string         `json:"elapsed"`
	Counts  map[string]int `json:"counts"`
	Results []resultView   `json:"results"`
}

func newSummaryView(summary importer.Summary) summaryView {
	view := summaryView{
		RunID:   summary.RunID,
		Source:  summary.Source,
		Elapsed: summary.Duration().Round(time.Millisecond).String(),
		Counts:  make(map[string]int, len(importer.Outcomes)),
		Results: make([]resultView, 0, len(summary.Results)),
	}
	for _, outcome := range importer.Outcomes {
		view.Counts[string(outcome)] = summary.Count(outcome)
	}
	for _, r := range summary.Results {
		rv := resultView{
			Title:    r.Record.Title,
			Outcome:  string(r.Outcome),
			Filled:   r.FilledFields,
			Credits:  r.Credits,
			Warnings: r.Warnings,
		}
		if r.Series != nil {
			rv.Series = r.Series.Slug
		}
		if r.Issue != nil {
			rv.Issue = r.Issue.Slug
		}
		view.Results = append(view.Results, rv)
	}
	return view
}

func printImportSummary(out io.Writer, summary importer.Summary, colorize bool) {
	spec := tableSpec{headers: []string{"Title", "Outcome", "Issue", "Notes"}}
	for _, r := range summary.Results {
		issue := ""
		if r.Issue != nil {
			issue = r.Issue.Slug
		}
		spec.add(r.Record.Title, string(r.Outcome), issue, resultNotes(r))
	}
	spec.print(out, "No records processed.")

	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Import summary", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, outcome := range importer.Outcomes {
		n := summary.Count(outcome)
		fmt.Fprintln(out, renderStatusLine(string(outcome), outcomeKind(outcome, n), strconv.Itoa(n), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("elapsed", statusInfo, summary.Duration().Round(time.Millisecond).String(), colorize))
}

func outcomeKind(outcome importer.Outcome, count int) statusKind {
	if count == 0 {
		return statusInfo
	}
	switch outcome {
	case importer.OutcomeCreated, importer.OutcomeExisting:
		return statusOK
	default:
		return statusWarn
	}
}

func resultNotes(r importer.Result) string {
	var notes []string
	if len(r.FilledFields) > 0 {
		notes = append(notes, "filled "+strings.Join(r.FilledFields, ", "))
	}
	if r.Credits > 0 {
		notes = append(notes, fmt.Sprintf("%d credits", r.Credits))
	}
	if r.Characters > 0 {
		notes = append(notes, fmt.Sprintf("%d characters", r.Characters))
	}
	if r.Teams > 0 {
		notes = append(notes, fmt.Sprintf("%d teams", r.Teams))
	}
	notes = append(notes, r.Warnings...)
	return strings.Join(notes, "; ")
}
