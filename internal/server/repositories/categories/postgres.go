package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/dbx"
	"github.com/dmitrijs2005/savespace/internal/server/models"
)

// PostgresRepository implements category storage over a dbx.Pool.
type PostgresRepository struct {
	db dbx.Pool
}

// NewPostgresRepository constructs a repository bound to the given pool.
func NewPostgresRepository(db dbx.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectAll returns all category documents ordered by name then id, so the
// iteration order seen by the association resolver is stable between
// refreshes.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT id, name, created_by, files FROM categories ORDER BY name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedBy, &item.Files); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one category or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT id, name, created_by, files FROM categories WHERE id = $1`

	result := &models.Category{}
	err := r.db.QueryRow(ctx, query, id).Scan(&result.ID, &result.Name, &result.CreatedBy, &result.Files)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	return result, nil
}

// Create inserts a category document, assigning a fresh id when none is set.
func (r *PostgresRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if category.Files == nil {
		category.Files = []string{}
	}

	query := `INSERT INTO categories (id, name, created_by, files) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.CreatedBy, category.Files)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// AddFile appends the locator to the category's files list unless it is
// already present. Adding a duplicate affects zero rows and is a no-op;
// a missing category yields ErrorNotFound.
func (r *PostgresRepository) AddFile(ctx context.Context, categoryID, locator string) error {
	query := `
		UPDATE categories SET files = array_append(files, $2::text)
		WHERE id = $1 AND NOT (files @> ARRAY[$2::text])
	`
	tag, err := r.db.Exec(ctx, query, categoryID, locator)
	if err != nil {
		return fmt.Errorf("failed to add file to category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// either the locator is already a member (fine) or the category
		// does not exist
		if _, err := r.GetByID(ctx, categoryID); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFile removes the locator from the category's files list. Removing
// an absent locator still touches the row and is a no-op; a missing
// category yields ErrorNotFound.
func (r *PostgresRepository) RemoveFile(ctx context.Context, categoryID, locator string) error {
	query := `UPDATE categories SET files = array_remove(files, $2::text) WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, categoryID, locator)
	if err != nil {
		return fmt.Errorf("failed to remove file from category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrorNotFound
	}
	return nil
}
