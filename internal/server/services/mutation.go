package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/logging"
	"github.com/dmitrijs2005/savespace/internal/server/blob"
	"github.com/dmitrijs2005/savespace/internal/server/models"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/categories"
)

// MutationService performs upload, delete and recategorize operations as
// ordered multi-step sequences across the blob store and the category
// store. There is no cross-store atomicity: each operation stops at its
// first failing step and never compensates, leaving a disclosed partial
// state. Every step uses set-union or set-difference semantics, so
// re-running a failed operation is always safe. Callers observe true state
// via a subsequent CatalogService.Refresh.
type MutationService struct {
	categories  categories.Repository
	attachments attachments.Repository
	blob        blob.Store
	logger      logging.Logger
}

// NewMutationService constructs a MutationService.
func NewMutationService(categories categories.Repository, attachments attachments.Repository, blob blob.Store, logger logging.Logger) *MutationService {
	return &MutationService{
		categories:  categories,
		attachments: attachments,
		blob:        blob,
		logger:      logger.With("component", "mutation"),
	}
}

// requireCategory verifies a coordinator precondition: the id must
// reference an existing category.
func (s *MutationService) requireCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return fmt.Errorf("category id is required: %w", common.ErrorPreconditionFailed)
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("category %s does not exist: %w", categoryID, common.ErrorPreconditionFailed)
		}
		return err
	}
	return nil
}

// Upload writes the file into the user's namespace and adds its locator to
// the target category. Steps:
//
//  1. put the blob at "<namespace>/<fileName>", overwriting silently;
//  2. derive the stable download locator;
//  3. add the locator to the category's membership list (set-union).
//
// A failure at step 1 aborts cleanly. A failure at step 3 leaves an orphan
// blob with no category association; it surfaces as uncategorized on the
// next refresh and is recoverable via Recategorize.
func (s *MutationService) Upload(ctx context.Context, user models.User, fileName string, content io.Reader, categoryID string) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("file name is required: %w", common.ErrorPreconditionFailed)
	}
	if content == nil {
		return "", fmt.Errorf("file content is required: %w", common.ErrorPreconditionFailed)
	}
	if err := s.requireCategory(ctx, categoryID); err != nil {
		return "", err
	}

	key := user.Namespace() + "/" + fileName

	if err := s.blob.Put(ctx, key, content); err != nil {
		return "", fmt.Errorf("upload blob: %w", err)
	}

	locator := s.blob.DownloadLocator(key)

	if err := s.categories.AddFile(ctx, categoryID, locator); err != nil {
		s.logger.Warn(ctx, "blob stored but category update failed, file is orphaned",
			"key", key, "category", categoryID, "error", err)
		return "", fmt.Errorf("attach file to category: %w", err)
	}

	s.logger.Info(ctx, "file uploaded", "key", key, "category", categoryID)

	return locator, nil
}

// Delete removes the file everywhere it is referenced. Steps:
//
//  1. delete the blob at "<namespace>/<fileName>" (ErrorNotFound if absent);
//  2. when categoryID is set, remove the locator from that category
//     (set-difference, absent locator is a no-op);
//  3. delete every attachment record referencing the locator.
//
// Steps 2 and 3 run after the irreversible step 1; a failure there strands
// metadata pointing at a gone blob. Readers tolerate such dangling entries
// (the resolver never verifies blob existence) and a retry of the whole
// operation is safe, apart from step 1 reporting ErrorNotFound.
func (s *MutationService) Delete(ctx context.Context, user models.User, fileName, locator, categoryID string) error {
	if fileName == "" || locator == "" {
		return fmt.Errorf("file name and locator are required: %w", common.ErrorPreconditionFailed)
	}

	key := user.Namespace() + "/" + fileName

	if err := s.blob.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}

	if categoryID != "" {
		if err := s.categories.RemoveFile(ctx, categoryID, locator); err != nil {
			s.logger.Warn(ctx, "blob deleted but category still references it",
				"key", key, "category", categoryID, "error", err)
			return fmt.Errorf("detach file from category: %w", err)
		}
	}

	n, err := s.attachments.DeleteByFileURL(ctx, locator)
	if err != nil {
		s.logger.Warn(ctx, "blob deleted but attachment cleanup failed",
			"key", key, "error", err)
		return fmt.Errorf("delete attachments: %w", err)
	}

	s.logger.Info(ctx, "file deleted", "key", key, "attachments_removed", n)

	return nil
}

// Recategorize moves a locator between categories. Removal from the old
// category runs first, so a partial failure leaves the file uncategorized,
// never in two categories. With no old category the operation is a pure
// add, and a failure there changes nothing.
func (s *MutationService) Recategorize(ctx context.Context, locator, oldCategoryID, newCategoryID string) error {
	if locator == "" {
		return fmt.Errorf("locator is required: %w", common.ErrorPreconditionFailed)
	}
	if err := s.requireCategory(ctx, newCategoryID); err != nil {
		return err
	}

	if oldCategoryID != "" {
		if err := s.categories.RemoveFile(ctx, oldCategoryID, locator); err != nil {
			return fmt.Errorf("detach from old category: %w", err)
		}
	}

	if err := s.categories.AddFile(ctx, newCategoryID, locator); err != nil {
		s.logger.Warn(ctx, "file detached but attach failed, file is orphaned",
			"locator", locator, "category", newCategoryID, "error", err)
		return fmt.Errorf("attach to new category: %w", err)
	}

	s.logger.Info(ctx, "file recategorized", "from", oldCategoryID, "to", newCategoryID)

	return nil
}
