package repo

import (
	"TeleCloud/internal/model"
	"context"

	"gorm.io/gorm"
)

// FileRepository: доступ к записям о файлах.
type FileRepository interface {
	Create(ctx context.Context, f *model.File) error

	// ListByFolder возвращает файлы папки, новые первыми.
	ListByFolder(ctx context.Context, folderID int64) ([]model.File, error)

	GetByID(ctx context.Context, id int64) (*model.File, error)
	Delete(ctx context.Context, id int64) (deleted bool, err error)

	// TotalsByUser считает файлы пользователя и их суммарный известный размер.
	TotalsByUser(ctx context.Context, userID int64) (count int64, sizeBytes int64, err error)
}

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepository создаёт реализацию репозитория файлов.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepo) ListByFolder(ctx context.Context, folderID int64) ([]model.File, error) {
	out := []model.File{}
	err := r.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("uploaded_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRepo) GetByID(ctx context.Context, id int64) (*model.File, error) {
	var f model.File
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.File{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *fileRepo) TotalsByUser(ctx context.Context, userID int64) (int64, int64, error) {
	var row struct {
		Count int64
		Size  int64
	}
	err := r.db.WithContext(ctx).
		Table("files AS fi").
		Select("COUNT(fi.id) AS count, COALESCE(SUM(fi.size), 0) AS size").
		Joins("JOIN folders f ON f.id = fi.folder_id").
		Where("f.user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Size, nil
}
