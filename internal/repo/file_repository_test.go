package repo

import (
	"TeleCloud/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFileRepository_CreateListGetDelete(t *testing.T) {
	db := newTestDB(t)
	folders := NewFolderRepository(db)
	r := NewFileRepository(db)
	ctx := context.Background()

	_, err := folders.Create(ctx, 1, "inbox")
	require.NoError(t, err)
	fid := folderID(t, db, 1, "inbox")

	now := time.Now().UTC()
	first := &model.File{FolderID: fid, FileRef: "ref-1", Name: "one.pdf", Type: model.FileTypeDocument, Size: sizePtr(10), UploadedAt: now.Add(-time.Minute)}
	second := &model.File{FolderID: fid, FileRef: "ref-2", Name: "two.jpg", Type: model.FileTypePhoto, UploadedAt: now}
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))

	// новые первыми; размер может быть неизвестен
	list, err := r.ListByFolder(ctx, fid)
	assert.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, "two.jpg", list[0].Name)
		assert.Nil(t, list[0].Size)
		assert.Equal(t, "one.pdf", list[1].Name)
		if assert.NotNil(t, list[1].Size) {
			assert.Equal(t, int64(10), *list[1].Size)
		}
	}

	got, err := r.GetByID(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ref-1", got.FileRef)
	assert.Equal(t, model.FileTypeDocument, got.Type)

	deleted, err := r.Delete(ctx, first.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	_, err = r.GetByID(ctx, first.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	deleted, err = r.Delete(ctx, first.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestFileRepository_TotalsByUser(t *testing.T) {
	db := newTestDB(t)
	folders := NewFolderRepository(db)
	r := NewFileRepository(db)
	ctx := context.Background()

	_, err := folders.Create(ctx, 4, "a")
	require.NoError(t, err)
	_, err = folders.Create(ctx, 4, "empty")
	require.NoError(t, err)
	_, err = folders.Create(ctx, 5, "foreign")
	require.NoError(t, err)
	a := folderID(t, db, 4, "a")
	foreign := folderID(t, db, 5, "foreign")

	require.NoError(t, r.Create(ctx, &model.File{FolderID: a, FileRef: "1", Type: model.FileTypeVideo, Size: sizePtr(1000)}))
	require.NoError(t, r.Create(ctx, &model.File{FolderID: a, FileRef: "2", Type: model.FileTypeVideo}))
	require.NoError(t, r.Create(ctx, &model.File{FolderID: foreign, FileRef: "3", Type: model.FileTypeVideo, Size: sizePtr(5)}))

	count, size, err := r.TotalsByUser(ctx, 4)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, int64(1000), size)

	// пользователь без файлов
	count, size, err = r.TotalsByUser(ctx, 77)
	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, size)
}
