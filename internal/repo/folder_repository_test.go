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

func sizePtr(n int64) *int64 { return &n }

// хелпер: папка по имени
func folderID(t *testing.T, db *gorm.DB, userID int64, name string) int64 {
	t.Helper()
	var f model.Folder
	require.NoError(t, db.Where("user_id = ? AND name = ?", userID, name).First(&f).Error)
	return f.ID
}

func TestFolderRepository_CreateRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	r := NewFolderRepository(db)
	ctx := context.Background()

	created, err := r.Create(ctx, 1, "Docs")
	assert.NoError(t, err)
	assert.True(t, created)

	// то же имя у того же пользователя: отказ, состояние не меняется
	created, err = r.Create(ctx, 1, "Docs")
	assert.NoError(t, err)
	assert.False(t, created)

	// у другого пользователя: можно
	created, err = r.Create(ctx, 2, "Docs")
	assert.NoError(t, err)
	assert.True(t, created)

	n, err := r.CountByUser(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFolderRepository_ListByUser_NewestFirstWithCounts(t *testing.T) {
	db := newTestDB(t)
	r := NewFolderRepository(db)
	files := NewFileRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Create(&model.Folder{UserID: 5, Name: "old", CreatedAt: base}).Error)
	require.NoError(t, db.Create(&model.Folder{UserID: 5, Name: "new", CreatedAt: base.Add(time.Minute)}).Error)
	require.NoError(t, db.Create(&model.Folder{UserID: 6, Name: "foreign", CreatedAt: base}).Error)

	oldID := folderID(t, db, 5, "old")
	for i := 0; i < 2; i++ {
		require.NoError(t, files.Create(ctx, &model.File{FolderID: oldID, FileRef: "ref", Name: "a.txt", Type: model.FileTypeDocument}))
	}

	list, err := r.ListByUser(ctx, 5)
	assert.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, "new", list[0].Name)
		assert.Equal(t, int64(0), list[0].FileCount)
		assert.Equal(t, "old", list[1].Name)
		assert.Equal(t, int64(2), list[1].FileCount)
	}

	// пользователь без папок: пустой список, не nil
	empty, err := r.ListByUser(ctx, 99)
	assert.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFolderRepository_DeleteCascadesFiles(t *testing.T) {
	db := newTestDB(t)
	r := NewFolderRepository(db)
	files := NewFileRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, 3, "trip")
	require.NoError(t, err)
	_, err = r.Create(ctx, 3, "keep")
	require.NoError(t, err)
	tripID := folderID(t, db, 3, "trip")
	keepID := folderID(t, db, 3, "keep")

	for i := 0; i < 3; i++ {
		require.NoError(t, files.Create(ctx, &model.File{FolderID: tripID, FileRef: "r", Name: "p.jpg", Type: model.FileTypePhoto}))
	}
	require.NoError(t, files.Create(ctx, &model.File{FolderID: keepID, FileRef: "k", Name: "k.pdf", Type: model.FileTypeDocument}))

	deleted, err := r.Delete(ctx, tripID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// ни одной осиротевшей записи о файле
	var orphans int64
	require.NoError(t, db.Model(&model.File{}).Where("folder_id = ?", tripID).Count(&orphans).Error)
	assert.Equal(t, int64(0), orphans)

	_, err = r.GetByID(ctx, tripID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	// соседняя папка не тронута
	rest, err := files.ListByFolder(ctx, keepID)
	assert.NoError(t, err)
	assert.Len(t, rest, 1)

	// повторное удаление: deleted=false
	deleted, err = r.Delete(ctx, tripID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestFolderRepository_TopByFileCount(t *testing.T) {
	db := newTestDB(t)
	r := NewFolderRepository(db)
	files := NewFileRepository(db)
	ctx := context.Background()

	counts := map[string]int{"a": 1, "b": 4, "c": 0, "d": 2}
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := r.Create(ctx, 8, name)
		require.NoError(t, err)
		id := folderID(t, db, 8, name)
		for i := 0; i < counts[name]; i++ {
			require.NoError(t, files.Create(ctx, &model.File{FolderID: id, FileRef: "x", Name: "x", Type: model.FileTypeAudio}))
		}
	}

	top, err := r.TopByFileCount(ctx, 8, 3)
	assert.NoError(t, err)
	assert.Equal(t, []model.FolderCount{{Name: "b", FileCount: 4}, {Name: "d", FileCount: 2}, {Name: "a", FileCount: 1}}, top)
}
