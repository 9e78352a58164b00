package categories

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func TestSelectAll_ReturnsCategories(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT id, name, created_by, files FROM categories ORDER BY name, id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_by", "files"}).
			AddRow("c1", "Docs", "u1", []string{"url1", "url2"}).
			AddRow("c2", "Pics", "u2", []string{}))

	got, err := repo.SelectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c1", got[0].ID)
	require.Equal(t, []string{"url1", "url2"}, got[0].Files)
	require.Equal(t, "u2", got[1].CreatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT id, name, created_by, files FROM categories WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_by", "files"}))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO categories \(id, name, created_by, files\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs(pgxmock.AnyArg(), "Docs", "u1", []string{}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	c := &models.Category{Name: "Docs", CreatedBy: "u1"}
	require.NoError(t, repo.Create(context.Background(), c))
	require.NotEmpty(t, c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFile_Appends(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE categories SET files = array_append`).
		WithArgs("c1", "url1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.AddFile(context.Background(), "c1", "url1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFile_DuplicateIsNoop(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE categories SET files = array_append`).
		WithArgs("c1", "url1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT id, name, created_by, files FROM categories WHERE id = \$1`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_by", "files"}).
			AddRow("c1", "Docs", "u1", []string{"url1"}))

	require.NoError(t, repo.AddFile(context.Background(), "c1", "url1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFile_MissingCategory(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE categories SET files = array_append`).
		WithArgs("nope", "url1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT id, name, created_by, files FROM categories WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_by", "files"}))

	err := repo.AddFile(context.Background(), "nope", "url1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRemoveFile_AbsentLocatorIsNoop(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	// array_remove on an existing row always reports one affected row
	mock.ExpectExec(`UPDATE categories SET files = array_remove`).
		WithArgs("c1", "unknown-url").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.RemoveFile(context.Background(), "c1", "unknown-url"))
}

func TestRemoveFile_MissingCategory(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE categories SET files = array_remove`).
		WithArgs("nope", "url1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.RemoveFile(context.Background(), "nope", "url1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSelectAll_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT id, name, created_by, files FROM categories`).
		WillReturnError(errors.New("boom"))

	_, err := repo.SelectAll(context.Background())
	require.Error(t, err)
}
