package attachments

import (
	"context"

	"github.com/dmitrijs2005/savespace/internal/server/models"
)

// Repository is the categoryAttachment side collection. Records are written
// by another subsystem; this core reads them and garbage-collects the ones
// referencing a deleted file.
type Repository interface {
	// SelectAll returns every attachment record.
	SelectAll(ctx context.Context) ([]*models.Attachment, error)
	// Create inserts a record (used by the attachment-producing subsystem
	// and by fixtures).
	Create(ctx context.Context, attachment *models.Attachment) error
	// DeleteByFileURL deletes all records referencing the locator and
	// returns the number removed. Zero matches is not an error.
	DeleteByFileURL(ctx context.Context, fileURL string) (int64, error)
}
