package categories

import (
	"context"

	"github.com/dmitrijs2005/savespace/internal/server/models"
)

// Repository is the category document store. Membership mutations use
// set semantics: AddFile is a no-op for an already-present locator and
// RemoveFile is a no-op for an absent one, which keeps every mutation
// step safe to retry.
type Repository interface {
	// SelectAll returns every category document in a stable order.
	// Ownership filtering happens at the service layer, matching the
	// index-less scan contract of the store.
	SelectAll(ctx context.Context) ([]*models.Category, error)
	// GetByID returns the category or ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// Create inserts a category, assigning an id when none is set.
	Create(ctx context.Context, category *models.Category) error
	// AddFile adds a locator to the category's membership list (set-union).
	AddFile(ctx context.Context, categoryID, locator string) error
	// RemoveFile removes a locator from the membership list (set-difference).
	RemoveFile(ctx context.Context, categoryID, locator string) error
}
