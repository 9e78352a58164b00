// Package server wires the catalog core together: configuration, the
// category store, the blob store and the services on top of them.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/savespace/internal/logging"
	"github.com/dmitrijs2005/savespace/internal/server/auth"
	"github.com/dmitrijs2005/savespace/internal/server/blob"
	"github.com/dmitrijs2005/savespace/internal/server/config"
	"github.com/dmitrijs2005/savespace/internal/server/models"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/savespace/internal/server/services"
)

// App owns the wired services. It is the composition root consumed by the
// presentation layer (or the listing entrypoint in cmd/server).
type App struct {
	config    *config.Config
	logger    logging.Logger
	rm        repomanager.RepositoryManager
	catalog   *services.CatalogService
	mutations *services.MutationService
}

// NewApp builds the repository manager (running migrations), the blob store
// client and the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store := blob.NewS3Store(c)

	catalog := services.NewCatalogService(rm.Categories(), store, logger)
	mutations := services.NewMutationService(rm.Categories(), rm.Attachments(), store, logger)

	return &App{
		config:    c,
		logger:    logger,
		rm:        rm,
		catalog:   catalog,
		mutations: mutations,
	}, nil
}

// Catalog exposes the read side.
func (app *App) Catalog() *services.CatalogService {
	return app.catalog
}

// Mutations exposes the write side.
func (app *App) Mutations() *services.MutationService {
	return app.mutations
}

// UserFromToken resolves the identity supplied by the authentication
// collaborator.
func (app *App) UserFromToken(token string) (models.User, error) {
	return auth.GetUserFromToken(token, []byte(app.config.SecretKey))
}

// Close releases the metadata-store connections.
func (app *App) Close() {
	app.rm.Close()
}
