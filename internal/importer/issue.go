package importer

import (
	"context"
	"errors"

	"comicsdb/internal/catalog"
	"comicsdb/internal/logging"
	"comicsdb/internal/services"
)

// upsertIssue fetches or creates the issue for result, fills empty fields and,
// on creation, attaches credits and links.
func (r *Reconciler) upsertIssue(ctx context.Context, result *Result) error {
	logger := logging.WithContext(ctx, r.logger)
	rec := result.Record

	storeDate := dateOnly(rec.StoreDate)
	key := catalog.IssueKey{
		SeriesID:  result.Series.ID,
		Number:    result.Parsed.Number,
		StoreDate: storeDate,
		CoverDate: catalog.CoverDateFor(storeDate, r.opts.CoverMonthsAhead),
	}
	if key.CoverDate.IsZero() {
		result.Outcome = OutcomeSkipped
		result.Warnings = append(result.Warnings, "record has no store date")
		logger.Warn("record not imported", logging.Args(logging.Outcome(string(OutcomeSkipped), "record has no store date")...)...)
		return nil
	}

	issue, created, err := r.catalog.GetOrCreateIssue(ctx, key)
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicate) {
			return err
		}
		return services.Wrap(services.ErrTransient, "importer", "upsert issue", result.Parsed.String(), err)
	}
	result.Issue = issue

	result.FilledFields = mergeFields(issue, rec)
	if len(result.FilledFields) > 0 {
		if err := r.catalog.UpdateIssue(ctx, issue); err != nil {
			return services.Wrap(services.ErrTransient, "importer", "update issue", issue.Slug, err)
		}
		logger.Info("filled issue fields", logging.String("issue", issue.Slug), logging.Any("fields", result.FilledFields))
	}

	if !created {
		result.Outcome = OutcomeExisting
		logger.Info("issue already exists", logging.Args(append(logging.Outcome(string(OutcomeExisting), "fetched stored issue"), logging.String("issue", issue.Slug))...)...)
		return nil
	}

	result.Outcome = OutcomeCreated
	if err := r.addEditorCredit(ctx, issue, result); err != nil {
		return err
	}
	if r.opts.AddCreators && len(rec.Contributors) > 0 {
		if err := r.addContributors(ctx, issue, rec.Contributors, result); err != nil {
			return err
		}
	}
	if len(rec.Characters) > 0 {
		n, err := r.linkEntities(ctx, catalog.KindCharacter, issue, rec.Characters, result)
		if err != nil {
			return err
		}
		result.Characters = n
	}
	if len(rec.Teams) > 0 {
		n, err := r.linkEntities(ctx, catalog.KindTeam, issue, rec.Teams, result)
		if err != nil {
			return err
		}
		result.Teams = n
	}
	logger.Info("issue added", logging.Args(append(logging.Outcome(string(OutcomeCreated), "new issue stored"),
		logging.String("issue", issue.Slug),
		logging.Int("credits", result.Credits),
		logging.Int("characters", result.Characters),
		logging.Int("teams", result.Teams),
	)...)...)
	return nil
}

// mergeFields copies description, price, UPC and page count from rec into
// issue where the issue's value is empty and rec's is present. It returns
// the names of the fields it set.
func mergeFields(issue *catalog.Issue, rec Record) []string {
	var filled []string
	if issue.Desc == "" && rec.Description != "" {
		issue.Desc = rec.Description
		filled = append(filled, "description")
	}
	if issue.Price.IsZero() && rec.Price.IsPositive() {
		issue.Price = rec.Price
		filled = append(filled, "price")
	}
	if issue.UPC == "" && rec.UPC != "" {
		issue.UPC = rec.UPC
		filled = append(filled, "upc")
	}
	if issue.PageCount == 0 && rec.PageCount > 0 {
		issue.PageCount = rec.PageCount
		filled = append(filled, "page_count")
	}
	return filled
}
