package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/savespace/internal/server/migrations"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/savespace/internal/server/repositories/categories"
)

// PostgresRepositoryManager wires the pgx pool to the category and
// attachment repositories and runs goose migrations.
type PostgresRepositoryManager struct {
	dsn         string
	pool        *pgxpool.Pool
	categories  categories.Repository
	attachments attachments.Repository
}

func (m *PostgresRepositoryManager) Categories() categories.Repository {
	return m.categories
}

func (m *PostgresRepositoryManager) Attachments() attachments.Repository {
	return m.attachments
}

func (m *PostgresRepositoryManager) Close() {
	m.pool.Close()
}

// RunMigrations applies the embedded migrations over a short-lived
// database/sql handle, which is what goose expects.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

// NewPostgresRepositoryManager opens a pool for the given DSN, constructs
// the repositories and applies migrations.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := &PostgresRepositoryManager{
		dsn:         dsn,
		pool:        pool,
		categories:  categories.NewPostgresRepository(pool),
		attachments: attachments.NewPostgresRepository(pool),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
