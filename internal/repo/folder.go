package repo

import (
	"TeleCloud/internal/model"
	"context"

	"gorm.io/gorm"
)

// FolderRepository: доступ к папкам пользователей.
type FolderRepository interface {
	// Create создаёт папку. created=false, если у пользователя уже есть папка с таким именем.
	Create(ctx context.Context, userID int64, name string) (created bool, err error)

	// ListByUser возвращает папки пользователя с числом файлов, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]model.FolderSummary, error)

	GetByID(ctx context.Context, id int64) (*model.Folder, error)

	// Delete удаляет файлы папки, затем саму папку, в одной транзакции.
	Delete(ctx context.Context, id int64) (deleted bool, err error)

	CountByUser(ctx context.Context, userID int64) (int64, error)

	// TopByFileCount возвращает limit папок с наибольшим числом файлов.
	TopByFileCount(ctx context.Context, userID int64, limit int) ([]model.FolderCount, error)
}

type folderRepo struct {
	db *gorm.DB
}

// NewFolderRepository создаёт реализацию репозитория папок.
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepo{db: db}
}

func (r *folderRepo) Create(ctx context.Context, userID int64, name string) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Folder{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := tx.Create(&model.Folder{UserID: userID, Name: name}).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *folderRepo) ListByUser(ctx context.Context, userID int64) ([]model.FolderSummary, error) {
	out := []model.FolderSummary{}
	err := r.db.WithContext(ctx).
		Table("folders AS f").
		Select("f.id AS id, f.name AS name, f.created_at AS created_at, COUNT(fi.id) AS file_count").
		Joins("LEFT JOIN files fi ON fi.folder_id = f.id").
		Where("f.user_id = ?", userID).
		Group("f.id, f.name, f.created_at").
		Order("f.created_at DESC, f.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *folderRepo) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	var f model.Folder
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *folderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", id).Delete(&model.File{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Folder{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *folderRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Folder{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *folderRepo) TopByFileCount(ctx context.Context, userID int64, limit int) ([]model.FolderCount, error) {
	out := []model.FolderCount{}
	err := r.db.WithContext(ctx).
		Table("folders AS f").
		Select("f.name AS name, COUNT(fi.id) AS file_count").
		Joins("LEFT JOIN files fi ON fi.folder_id = f.id").
		Where("f.user_id = ?", userID).
		Group("f.id, f.name").
		Order("file_count DESC, f.id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
