package importer

import (
	"context"
	"fmt"

	"comicsdb/internal/catalog"
	"comicsdb/internal/logging"
	"comicsdb/internal/services"
)

// seriesCandidates returns the series matching parsed.Series. When more than
// NarrowThreshold match and the title carries a year, only series beginning
// that year are kept, unless none do.
func (r *Reconciler) seriesCandidates(ctx context.Context, parsed ParsedTitle) ([]catalog.Series, error) {
	results, err := r.catalog.SearchSeries(ctx, catalog.SeriesQuery{Name: parsed.Series})
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importer", "search series", parsed.Series, err)
	}
	if len(results) <= r.opts.NarrowThreshold || parsed.Year == 0 {
		return results, nil
	}
	narrowed, err := r.catalog.SearchSeries(ctx, catalog.SeriesQuery{Name: parsed.Series, YearBegan: parsed.Year})
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importer", "search series", parsed.Series, err)
	}
	logging.WithContext(ctx, r.logger).Debug("narrowed series candidates by year",
		logging.Int("before", len(results)),
		logging.Int("after", len(narrowed)),
		logging.Int("year", parsed.Year),
	)
	if len(narrowed) == 0 {
		return results, nil
	}
	return narrowed, nil
}

// resolveSeries returns the chosen series, or nil with OutcomeUnmatched when
// nothing matched and OutcomeSkipped when the chooser declined.
func (r *Reconciler) resolveSeries(ctx context.Context, parsed ParsedTitle) (*catalog.Series, Outcome, error) {
	candidates, err := r.seriesCandidates(ctx, parsed)
	if err != nil {
		return nil, "", err
	}
	if len(candidates) == 0 {
		return nil, OutcomeUnmatched, nil
	}

	options := make([]Candidate, len(candidates))
	for i, s := range candidates {
		options[i] = Candidate{Label: s.Label(), Detail: s.Slug}
	}
	idx, ok, err := r.choose(ctx, fmt.Sprintf("Series for %s", parsed), options)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, OutcomeSkipped, nil
	}
	chosen := candidates[idx]
	return &chosen, "", nil
}
