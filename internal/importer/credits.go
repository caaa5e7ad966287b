package importer

import (
	"context"
	"fmt"
	"strings"

	"comicsdb/internal/catalog"
	"comicsdb/internal/logging"
	"comicsdb/internal/services"
	"comicsdb/internal/textutil"
)

// NormalizeRole maps source role names onto catalog role names: "penciler"
// becomes "penciller" and any cover variant becomes "cover". Other roles pass
// through lowercased.
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	switch {
	case role == "penciler":
		return "penciller"
	case strings.Contains(role, "cover"):
		return "cover"
	default:
		return role
	}
}

// addEditorCredit credits the configured editor. The role is only attached
// when the credit row is new.
func (r *Reconciler) addEditorCredit(ctx context.Context, issue *catalog.Issue, result *Result) error {
	if r.editor == nil {
		return nil
	}
	credit, created, err := r.catalog.GetOrCreateCredit(ctx, issue.ID, r.editor.ID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "importer", "editor credit", issue.Slug, err)
	}
	if created {
		if err := r.catalog.AddCreditRole(ctx, credit.ID, r.editorRole.ID); err != nil {
			return services.Wrap(services.ErrTransient, "importer", "editor credit role", issue.Slug, err)
		}
		result.Credits++
	}
	logging.WithContext(ctx, r.logger).Debug("added editor credit",
		logging.String("creator", r.editor.Name),
		logging.String("role", r.editorRole.Name),
		logging.Bool("new_credit", created),
	)
	return nil
}

func (r *Reconciler) addContributors(ctx context.Context, issue *catalog.Issue, contributors []Contributor, result *Result) error {
	logger := logging.WithContext(ctx, r.logger)
	for _, contributor := range contributors {
		name := strings.TrimSpace(contributor.Name)
		if name == "" {
			continue
		}
		roleName := NormalizeRole(contributor.Role)
		role, err := r.catalog.RoleByName(ctx, roleName)
		if err != nil {
			return services.Wrap(services.ErrTransient, "importer", "lookup role", roleName, err)
		}
		if role == nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown role %q for %s", roleName, name))
			logger.Warn("unknown role, skipping contributor", logging.String("creator", name), logging.String("role", roleName))
			continue
		}

		creator, err := r.resolveCreator(ctx, name)
		if err != nil {
			return err
		}
		if creator == nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("creator %q not found", name))
			logger.Warn("unable to find creator, skipping", logging.String("creator", name))
			continue
		}

		credit, _, err := r.catalog.GetOrCreateCredit(ctx, issue.ID, creator.ID)
		if err != nil {
			return services.Wrap(services.ErrTransient, "importer", "credit", creator.Slug, err)
		}
		if err := r.catalog.AddCreditRole(ctx, credit.ID, role.ID); err != nil {
			return services.Wrap(services.ErrTransient, "importer", "credit role", creator.Slug, err)
		}
		result.Credits++
		logger.Info("added credit", logging.String("creator", creator.Name), logging.String("role", role.Name), logging.String("issue", issue.Slug))
	}
	return nil
}

// creatorCandidates searches for name. With no hit it retries on the surname
// alone and, when that returns more than NarrowThreshold creators, requires
// the first name too unless that leaves nothing.
func (r *Reconciler) creatorCandidates(ctx context.Context, name string) ([]catalog.Creator, error) {
	results, err := r.catalog.SearchCreators(ctx, name)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importer", "search creators", name, err)
	}
	if len(results) > 0 {
		return results, nil
	}
	first, last, ok := textutil.NameTokens(name)
	if !ok {
		return nil, nil
	}
	results, err = r.catalog.SearchCreators(ctx, last)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importer", "search creators", last, err)
	}
	if len(results) <= r.opts.NarrowThreshold {
		return results, nil
	}
	narrowed, err := r.catalog.SearchCreators(ctx, last, first)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importer", "search creators", name, err)
	}
	if len(narrowed) == 0 {
		return results, nil
	}
	return narrowed, nil
}

func (r *Reconciler) resolveCreator(ctx context.Context, name string) (*catalog.Creator, error) {
	candidates, err := r.creatorCandidates(ctx, name)
	if err != nil || len(candidates) == 0 {
		return nil, err
	}
	options := make([]Candidate, len(candidates))
	for i, c := range candidates {
		options[i] = Candidate{Label: c.Name, Detail: c.Slug}
	}
	idx, ok, err := r.choose(ctx, fmt.Sprintf("Creator for %s", name), options)
	if err != nil || !ok {
		return nil, err
	}
	chosen := candidates[idx]
	return &chosen, nil
}

// linkEntities attaches characters or teams matched by exact name. Misses
// are logged and skipped.
func (r *Reconciler) linkEntities(ctx context.Context, kind catalog.EntityKind, issue *catalog.Issue, names []string, result *Result) (int, error) {
	logger := logging.WithContext(ctx, r.logger)
	linked := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		entity, err := r.catalog.EntityByName(ctx, kind, name)
		if err != nil {
			return linked, services.Wrap(services.ErrTransient, "importer", "lookup "+string(kind), name, err)
		}
		if entity == nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %q not found", kind, name))
			logger.Warn("unable to find "+string(kind)+", skipping", logging.String("name", name))
			continue
		}
		if err := r.catalog.LinkEntity(ctx, kind, issue.ID, entity.ID); err != nil {
			return linked, services.Wrap(services.ErrTransient, "importer", "link "+string(kind), name, err)
		}
		linked++
	}
	return linked, nil
}
