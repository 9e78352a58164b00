package repomanager

import (
	"context"

	"github.com/dmitrijs2005/savespace/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/categories"
)

// RepositoryManager owns the metadata-store connection and hands out
// repositories bound to it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Categories() categories.Repository
	Attachments() attachments.Repository
	Close()
}
