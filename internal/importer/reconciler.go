package importer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"comicsdb/internal/catalog"
	"comicsdb/internal/config"
	"comicsdb/internal/logging"
	"comicsdb/internal/services"
)

// Options tune reconciliation.
type Options struct {
	// NarrowThreshold is the candidate count above which series and creator
	// searches are narrowed.
	NarrowThreshold  int
	CoverMonthsAhead int
	// EditorCreditCreator is a creator slug credited on every new issue with
	// EditorCreditRole. Empty disables the credit.
	EditorCreditCreator string
	EditorCreditRole    string
	// AddCreators enables contributor credits on new issues.
	AddCreators bool
}

// OptionsFromConfig builds Options from the [import] configuration section.
func OptionsFromConfig(cfg *config.Config, addCreators bool) Options {
	return Options{
		NarrowThreshold:     cfg.Import.NarrowThreshold,
		CoverMonthsAhead:    cfg.Import.CoverMonthsAhead,
		EditorCreditCreator: cfg.Import.EditorCreditCreator,
		EditorCreditRole:    cfg.Import.EditorCreditRole,
		AddCreators:         addCreators,
	}
}

// Reconciler imports records into a Catalog.
type Reconciler struct {
	catalog Catalog
	chooser Chooser
	opts    Options
	logger  *slog.Logger

	prepared   bool
	editor     *catalog.Creator
	editorRole *catalog.Role
	now        func() time.Time
}

// New constructs a Reconciler. A nil chooser declines every choice.
func New(cat Catalog, chooser Chooser, opts Options, logger *slog.Logger) *Reconciler {
	if chooser == nil {
		chooser = ChooserFunc(func(context.Context, string, []Candidate) (int, bool, error) { return 0, false, nil })
	}
	if opts.NarrowThreshold <= 0 {
		opts.NarrowThreshold = 15
	}
	return &Reconciler{
		catalog: cat,
		chooser: chooser,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "importer"),
		now:     time.Now,
	}
}

// prepare resolves the configured editor credit once per reconciler. A
// configured creator or role missing from the catalog is a configuration
// error.
func (r *Reconciler) prepare(ctx context.Context) error {
	if r.prepared {
		return nil
	}
	if slug := strings.TrimSpace(r.opts.EditorCreditCreator); slug != "" {
		creator, err := r.catalog.CreatorBySlug(ctx, slug)
		if err != nil {
			return services.Wrap(services.ErrTransient, "importer", "prepare", "load editor credit creator", err)
		}
		if creator == nil {
			return services.Wrap(services.ErrConfiguration, "importer", "prepare",
				fmt.Sprintf("editor credit creator %q is not in the catalog", slug), nil)
		}
		role, err := r.catalog.RoleByName(ctx, r.opts.EditorCreditRole)
		if err != nil {
			return services.Wrap(services.ErrTransient, "importer", "prepare", "load editor credit role", err)
		}
		if role == nil {
			return services.Wrap(services.ErrConfiguration, "importer", "prepare",
				fmt.Sprintf("editor credit role %q is not in the catalog", r.opts.EditorCreditRole), nil)
		}
		r.editor, r.editorRole = creator, role
	}
	r.prepared = true
	return nil
}

// Run imports records sorted by title and returns the per-record results.
// Context cancellation is honoured between records; recoverable conditions
// (no match, declined choice, duplicates, unknown roles or characters) are
// logged and the run continues. Any other error stops the run and is returned
// together with the results gathered so far.
func (r *Reconciler) Run(ctx context.Context, source string, records []Record) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), Source: source, Started: r.now()}
	ctx = services.WithSource(services.WithRunID(ctx, summary.RunID), source)
	logger := logging.WithContext(ctx, r.logger)

	if err := r.prepare(ctx); err != nil {
		summary.Finished = r.now()
		return summary, err
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int { return cmp.Compare(a.Title, b.Title) })

	logger.Info("import started", logging.Int("records", len(sorted)), logging.Bool("creators", r.opts.AddCreators))
	for i, rec := range sorted {
		if err := ctx.Err(); err != nil {
			summary.Finished = r.now()
			return summary, err
		}
		result, err := r.Import(services.WithRecordIndex(ctx, i+1), rec)
		if err != nil {
			summary.Finished = r.now()
			return summary, err
		}
		summary.Results = append(summary.Results, result)
	}
	summary.Finished = r.now()

	logger.Info("import finished",
		logging.Int(string(OutcomeCreated), summary.Count(OutcomeCreated)),
		logging.Int(string(OutcomeExisting), summary.Count(OutcomeExisting)),
		logging.Int(string(OutcomeDuplicate), summary.Count(OutcomeDuplicate)),
		logging.Int(string(OutcomeSkipped), summary.Count(OutcomeSkipped)),
		logging.Int(string(OutcomeUnmatched), summary.Count(OutcomeUnmatched)),
		logging.Duration("elapsed", summary.Duration()),
	)
	return summary, nil
}

// Import reconciles a single record.
func (r *Reconciler) Import(ctx context.Context, rec Record) (Result, error) {
	if err := r.prepare(ctx); err != nil {
		return Result{}, err
	}
	logger := logging.WithContext(ctx, r.logger)

	result := Result{Record: rec, Parsed: ParseTitle(rec.Title)}
	logger.Info("searching catalog", logging.String("series", result.Parsed.Series), logging.String("number", result.Parsed.Number))

	series, outcome, err := r.resolveSeries(ctx, result.Parsed)
	if err != nil {
		return result, err
	}
	if series == nil {
		result.Outcome = outcome
		reason := "no series in catalog"
		if outcome == OutcomeSkipped {
			reason = "no candidate chosen"
		}
		logger.Info("record not imported", logging.Args(append(logging.Outcome(string(outcome), reason), logging.String("title", rec.Title))...)...)
		return result, nil
	}
	result.Series = series

	if result.Parsed.Number == "" {
		result.Outcome = OutcomeSkipped
		result.Warnings = append(result.Warnings, "title has no issue number")
		logger.Warn("record not imported", logging.Args(append(logging.Outcome(string(OutcomeSkipped), "title has no issue number"),
			logging.String("title", rec.Title),
			logging.String("series", series.Label()))...)...)
		return result, nil
	}

	if err := r.upsertIssue(ctx, &result); err != nil {
		if errors.Is(err, catalog.ErrDuplicate) {
			result.Outcome = OutcomeDuplicate
			logger.Warn("issue already imported",
				logging.Args(append(logging.Outcome(string(OutcomeDuplicate), "series and number already stored"),
					logging.String("series", series.Label()),
					logging.String("number", result.Parsed.Number))...)...)
			return result, nil
		}
		return result, err
	}
	return result, nil
}
