package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/logging"
	"github.com/dmitrijs2005/savespace/internal/server/blob"
	"github.com/dmitrijs2005/savespace/internal/server/models"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/categories"
	"github.com/dmitrijs2005/savespace/internal/sizex"
)

// CatalogService derives the in-memory file catalog: objects actually
// present in blob storage, joined with the category that claims each one.
// The catalog is recomputed by an explicit Refresh call after mutations;
// nothing is cached here.
type CatalogService struct {
	categories categories.Repository
	blob       blob.Store
	logger     logging.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(categories categories.Repository, blob blob.Store, logger logging.Logger) *CatalogService {
	return &CatalogService{
		categories: categories,
		blob:       blob,
		logger:     logger.With("component", "catalog"),
	}
}

// Categories returns the user's own categories, in the stable store order
// the resolver iterates in. Ownership is filtered here, over the full
// collection; acceptable at expected scale.
func (s *CatalogService) Categories(ctx context.Context, user models.User) ([]*models.Category, error) {
	all, err := s.categories.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w: %w", common.ErrorStoreUnavailable, err)
	}

	var owned []*models.Category
	for _, c := range all {
		if c.CreatedBy == user.UID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

// Refresh recomputes the catalog for the user: list blobs under the user's
// namespace, then per blob (concurrently) derive the locator, resolve its
// category against the fetched snapshot and attach size metadata.
//
// The refresh is all-or-nothing: a failure on any single blob fails the
// whole call and no partial catalog is returned. Fetches still in flight
// finish into their own slots and cannot corrupt the aggregate. The caller
// is free to retry; every step is a read.
func (s *CatalogService) Refresh(ctx context.Context, user models.User) ([]*models.FileRef, error) {
	cats, err := s.Categories(ctx, user)
	if err != nil {
		return nil, err
	}

	objects, err := s.blob.List(ctx, user.Namespace())
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w: %w", common.ErrorStoreUnavailable, err)
	}

	refs := make([]*models.FileRef, len(objects))

	g, gctx := errgroup.WithContext(ctx)
	for i, obj := range objects {
		g.Go(func() error {
			locator := s.blob.DownloadLocator(obj.Key)

			size, err := s.blob.SizeMetadata(gctx, obj.Key)
			if err != nil {
				return fmt.Errorf("size metadata %s: %w: %w", obj.Key, common.ErrorStoreUnavailable, err)
			}

			refs[i] = &models.FileRef{
				Name:       obj.Name,
				URL:        locator,
				CategoryID: ResolveCategory(locator, cats),
				Size:       size,
				SizeLabel:  sizex.Format(size),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "catalog refreshed", "user", user.UID, "files", len(refs), "categories", len(cats))

	return refs, nil
}

// FilterCatalog narrows a refreshed catalog by a case-insensitive name
// substring and a category id. An empty or "all" category filter keeps
// everything.
func FilterCatalog(refs []*models.FileRef, searchTerm, categoryFilter string) []*models.FileRef {
	term := strings.ToLower(searchTerm)
	filterAll := categoryFilter == "" || categoryFilter == common.AllCategoriesFilter

	var result []*models.FileRef
	for _, ref := range refs {
		if term != "" && !strings.Contains(strings.ToLower(ref.Name), term) {
			continue
		}
		if !filterAll && ref.CategoryID != categoryFilter {
			continue
		}
		result = append(result, ref)
	}
	return result
}
