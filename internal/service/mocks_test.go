package service

import (
	"TeleCloud/internal/model"
	"TeleCloud/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.FolderRepository
type mockFolderRepo struct{ mock.Mock }

func (m *mockFolderRepo) Create(ctx context.Context, userID int64, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockFolderRepo) ListByUser(ctx context.Context, userID int64) ([]model.FolderSummary, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.FolderSummary); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFolderRepo) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Folder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFolderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockFolderRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFolderRepo) TopByFileCount(ctx context.Context, userID int64, limit int) ([]model.FolderCount, error) {
	args := m.Called(ctx, userID, limit)
	if v, ok := args.Get(0).([]model.FolderCount); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.FolderRepository = (*mockFolderRepo)(nil)

// мок для repo.FileRepository
type mockFileRepo struct{ mock.Mock }

func (m *mockFileRepo) Create(ctx context.Context, f *model.File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockFileRepo) ListByFolder(ctx context.Context, folderID int64) ([]model.File, error) {
	args := m.Called(ctx, folderID)
	if v, ok := args.Get(0).([]model.File); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) GetByID(ctx context.Context, id int64) (*model.File, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.File); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockFileRepo) TotalsByUser(ctx context.Context, userID int64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

var _ repo.FileRepository = (*mockFileRepo)(nil)
