package importer

import (
	"context"

	"comicsdb/internal/catalog"
)

// Catalog is the persistence surface the reconciler needs. *catalog.Store
// implements it.
type Catalog interface {
	SearchSeries(ctx context.Context, query catalog.SeriesQuery) ([]catalog.Series, error)
	SearchCreators(ctx context.Context, fragments ...string) ([]catalog.Creator, error)
	CreatorBySlug(ctx context.Context, slug string) (*catalog.Creator, error)
	RoleByName(ctx context.Context, name string) (*catalog.Role, error)
	EntityByName(ctx context.Context, kind catalog.EntityKind, name string) (*catalog.Entity, error)
	GetOrCreateIssue(ctx context.Context, key catalog.IssueKey) (*catalog.Issue, bool, error)
	UpdateIssue(ctx context.Context, issue *catalog.Issue) error
	GetOrCreateCredit(ctx context.Context, issueID, creatorID int64) (*catalog.Credit, bool, error)
	AddCreditRole(ctx context.Context, creditID, roleID int64) error
	LinkEntity(ctx context.Context, kind catalog.EntityKind, issueID, entityID int64) error
}

var _ Catalog = (*catalog.Store)(nil)
