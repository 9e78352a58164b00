package attachments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/savespace/internal/dbx"
	"github.com/dmitrijs2005/savespace/internal/server/models"
)

// PostgresRepository implements attachment storage over a dbx.Pool.
type PostgresRepository struct {
	db dbx.Pool
}

// NewPostgresRepository constructs a repository bound to the given pool.
func NewPostgresRepository(db dbx.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectAll returns all attachment records.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Attachment, error) {
	query := `SELECT id, file_url, payload FROM category_attachments`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select attachments: %w", err)
	}
	defer rows.Close()

	var result []*models.Attachment
	for rows.Next() {
		var item models.Attachment
		if err := rows.Scan(&item.ID, &item.FileURL, &item.Payload); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts an attachment record, assigning a fresh id when none is set.
func (r *PostgresRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}

	query := `INSERT INTO category_attachments (id, file_url, payload) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, attachment.ID, attachment.FileURL, attachment.Payload)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

// DeleteByFileURL removes every record whose file_url matches the locator.
func (r *PostgresRepository) DeleteByFileURL(ctx context.Context, fileURL string) (int64, error) {
	query := `DELETE FROM category_attachments WHERE file_url = $1`

	tag, err := r.db.Exec(ctx, query, fileURL)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attachments: %w", err)
	}
	return tag.RowsAffected(), nil
}
