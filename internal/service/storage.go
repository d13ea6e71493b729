package service

import (
	"TeleCloud/internal/model"
	"TeleCloud/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultMaxFolderName: ограничение длины имени папки в символах.
const DefaultMaxFolderName = 50

const topFoldersLimit = 3

// StorageService: бизнес-логика хранилища: пользователи, папки, файлы, статистика.
// Каждый вызов: отдельная короткая транзакция, многошаговых транзакций нет.
type StorageService struct {
	users   repo.UserRepository
	folders repo.FolderRepository
	files   repo.FileRepository
	logger  *zap.SugaredLogger

	maxFolderName int
}

// NewStorageService создаёт сервис хранилища.
func NewStorageService(users repo.UserRepository, folders repo.FolderRepository, files repo.FileRepository, logger *zap.SugaredLogger) *StorageService {
	return &StorageService{
		users:         users,
		folders:       folders,
		files:         files,
		logger:        logger,
		maxFolderName: DefaultMaxFolderName,
	}
}

// SetMaxFolderName меняет ограничение длины имени папки (0: значение по умолчанию).
func (s *StorageService) SetMaxFolderName(n int) {
	if n <= 0 {
		n = DefaultMaxFolderName
	}
	s.maxFolderName = n
}

// MaxFolderName возвращает текущее ограничение длины имени папки.
func (s *StorageService) MaxFolderName() int {
	return s.maxFolderName
}

// RegisterUser сохраняет пользователя при первом контакте.
func (s *StorageService) RegisterUser(ctx context.Context, id int64, username, firstName string) error {
	created, err := s.users.CreateIfAbsent(ctx, &model.User{ID: id, Username: username, FirstName: firstName})
	if err != nil {
		return fmt.Errorf("register user %d: %w", id, err)
	}
	if created {
		s.logger.Infow("user registered", "user_id", id, "username", username)
	}
	return nil
}

// CreateFolder создаёт папку и возвращает сохранённое (обрезанное) имя.
// При совпадении имени возвращает ErrFolderExists, ничего не меняя.
func (s *StorageService) CreateFolder(ctx context.Context, userID int64, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > s.maxFolderName {
		return name, ErrInvalidFolderName
	}
	created, err := s.folders.Create(ctx, userID, name)
	if err != nil {
		return name, fmt.Errorf("create folder: %w", err)
	}
	if !created {
		return name, ErrFolderExists
	}
	return name, nil
}

// ListFolders возвращает папки пользователя с числом файлов, новые первыми.
func (s *StorageService) ListFolders(ctx context.Context, userID int64) ([]model.FolderSummary, error) {
	list, err := s.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return list, nil
}

// GetFolder возвращает папку или ErrNotFound.
func (s *StorageService) GetFolder(ctx context.Context, folderID int64) (*model.Folder, error) {
	f, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, notFound(err, "get folder")
	}
	return f, nil
}

// AddFile сохраняет ссылку на файл в папке.
func (s *StorageService) AddFile(ctx context.Context, folderID int64, d model.FileDescriptor) (*model.File, error) {
	if !d.Type.Valid() {
		return nil, ErrInvalidFileType
	}
	f := &model.File{
		FolderID: folderID,
		FileRef:  d.FileRef,
		Name:     d.Name,
		Type:     d.Type,
		Size:     d.Size,
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("add file: %w", err)
	}
	return f, nil
}

// ListFiles возвращает файлы папки, новые первыми.
func (s *StorageService) ListFiles(ctx context.Context, folderID int64) ([]model.File, error) {
	list, err := s.files.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return list, nil
}

// GetFileInfo возвращает запись о файле или ErrNotFound.
func (s *StorageService) GetFileInfo(ctx context.Context, fileID int64) (*model.File, error) {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, notFound(err, "get file")
	}
	return f, nil
}

// DeleteFile удаляет запись о файле.
func (s *StorageService) DeleteFile(ctx context.Context, fileID int64) error {
	deleted, err := s.files.Delete(ctx, fileID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// DeleteFolder удаляет папку вместе со всеми файлами.
func (s *StorageService) DeleteFolder(ctx context.Context, folderID int64) error {
	deleted, err := s.folders.Delete(ctx, folderID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Infow("folder deleted", "folder_id", folderID)
	return nil
}

// GetUserStats собирает статистику пользователя.
func (s *StorageService) GetUserStats(ctx context.Context, userID int64) (model.UserStats, error) {
	var st model.UserStats
	var err error

	if st.TotalFolders, err = s.folders.CountByUser(ctx, userID); err != nil {
		return st, fmt.Errorf("count folders: %w", err)
	}
	if st.TotalFiles, st.TotalSizeBytes, err = s.files.TotalsByUser(ctx, userID); err != nil {
		return st, fmt.Errorf("file totals: %w", err)
	}
	if st.TopFolders, err = s.folders.TopByFileCount(ctx, userID, topFoldersLimit); err != nil {
		return st, fmt.Errorf("top folders: %w", err)
	}
	st.TotalSizeMB = float64(st.TotalSizeBytes) / (1024 * 1024)
	return st, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
