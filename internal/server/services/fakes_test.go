package services

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrijs2005/savespace/internal/common"
	"github.com/dmitrijs2005/savespace/internal/logging"
	"github.com/dmitrijs2005/savespace/internal/server/blob"
	"github.com/dmitrijs2005/savespace/internal/server/models"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeCategoryRepo keeps categories in a slice so iteration order is under
// test control.
type fakeCategoryRepo struct {
	cats []*models.Category

	selectErr error
	addErr    error
	removeErr error

	removeCalls int
}

func (f *fakeCategoryRepo) SelectAll(ctx context.Context) ([]*models.Category, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	out := make([]*models.Category, len(f.cats))
	copy(out, f.cats)
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	for _, c := range f.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	f.cats = append(f.cats, category)
	return nil
}

func (f *fakeCategoryRepo) AddFile(ctx context.Context, categoryID, locator string) error {
	if f.addErr != nil {
		return f.addErr
	}
	c, err := f.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c.Contains(locator) {
		return nil
	}
	c.Files = append(c.Files, locator)
	return nil
}

func (f *fakeCategoryRepo) RemoveFile(ctx context.Context, categoryID, locator string) error {
	f.removeCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	c, err := f.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	files := c.Files[:0]
	for _, l := range c.Files {
		if l != locator {
			files = append(files, l)
		}
	}
	c.Files = files
	return nil
}

type fakeAttachmentRepo struct {
	records []*models.Attachment

	deleteErr error
}

func (f *fakeAttachmentRepo) SelectAll(ctx context.Context) ([]*models.Attachment, error) {
	out := make([]*models.Attachment, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeAttachmentRepo) Create(ctx context.Context, attachment *models.Attachment) error {
	f.records = append(f.records, attachment)
	return nil
}

func (f *fakeAttachmentRepo) DeleteByFileURL(ctx context.Context, fileURL string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var kept []*models.Attachment
	var removed int64
	for _, a := range f.records {
		if a.FileURL == fileURL {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	f.records = kept
	return removed, nil
}

// fakeBlobStore is an in-memory object store with stable list order and
// injectable failures.
type fakeBlobStore struct {
	objects map[string][]byte
	order   []string

	putErr     error
	listErr    error
	deleteErr  error
	sizeErrKey string
	sizeErr    error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, body io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if _, exists := f.objects[key]; !exists {
		f.order = append(f.order, key)
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) List(ctx context.Context, prefix string) ([]blob.Object, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []blob.Object
	for _, key := range f.order {
		if strings.HasPrefix(key, prefix+"/") {
			out = append(out, blob.Object{Key: key, Name: key[strings.LastIndex(key, "/")+1:]})
		}
	}
	return out, nil
}

func (f *fakeBlobStore) DownloadLocator(key string) string {
	return "mem://" + key
}

func (f *fakeBlobStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	return "mem+presigned://" + key, nil
}

func (f *fakeBlobStore) SizeMetadata(ctx context.Context, key string) (int64, error) {
	if f.sizeErr != nil && key == f.sizeErrKey {
		return 0, f.sizeErr
	}
	data, ok := f.objects[key]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return int64(len(data)), nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.objects[key]; !ok {
		return common.ErrorNotFound
	}
	delete(f.objects, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}
