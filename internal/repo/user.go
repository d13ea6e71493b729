package repo

import (
	"TeleCloud/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository: доступ к пользователям бота.
type UserRepository interface {
	// CreateIfAbsent добавляет пользователя, если его ещё нет. Существующая запись не меняется.
	CreateIfAbsent(ctx context.Context, user *model.User) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(user)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
