package handlers

import (
	"TeleCloud/internal/config"
	"TeleCloud/internal/model"
	"TeleCloud/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Storage: операции хранилища, доступные через API.
type Storage interface {
	ListFolders(ctx context.Context, userID int64) ([]model.FolderSummary, error)
	ListFiles(ctx context.Context, folderID int64) ([]model.File, error)
	GetFileInfo(ctx context.Context, fileID int64) (*model.File, error)
	DeleteFile(ctx context.Context, fileID int64) error
	DeleteFolder(ctx context.Context, folderID int64) error
	GetUserStats(ctx context.Context, userID int64) (model.UserStats, error)
}

// CloudHandler отдаёт папки, файлы и статистику для веб-галереи.
type CloudHandler struct {
	Storage Storage
	Linker  FileLinker
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewCloudHandler создаёт хендлер хранилища
func NewCloudHandler(storage Storage, linker FileLinker, logger *zap.SugaredLogger, cfg *config.Config) *CloudHandler {
	return &CloudHandler{Storage: storage, Linker: linker, Logger: logger, Config: cfg}
}

// FolderDTO: папка в ответе API
type FolderDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	FileCount int64     `json:"file_count"`
}

// FileDTO: файл в ответе API
type FileDTO struct {
	ID             int64     `json:"id"`
	TelegramFileID string    `json:"telegram_file_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Size           *int64    `json:"size"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// Health проверка доступности
func (h *CloudHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]any{"status": "ok", "message": "API is running"})
}

// Folders список папок пользователя, новые первыми
func (h *CloudHandler) Folders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	folders, err := h.Storage.ListFolders(r.Context(), userID)
	if err != nil {
		h.fail(w, "list folders", err)
		return
	}
	out := make([]FolderDTO, 0, len(folders))
	for _, f := range folders {
		out = append(out, FolderDTO{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt, FileCount: f.FileCount})
	}
	writeOK(w, map[string]any{"folders": out})
}

// Files список файлов папки, новые первыми
func (h *CloudHandler) Files(w http.ResponseWriter, r *http.Request) {
	folderID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	files, err := h.Storage.ListFiles(r.Context(), folderID)
	if err != nil {
		h.fail(w, "list files", err)
		return
	}
	out := make([]FileDTO, 0, len(files))
	for _, f := range files {
		out = append(out, FileDTO{
			ID:             f.ID,
			TelegramFileID: f.FileRef,
			Name:           f.Name,
			Type:           string(f.Type),
			Size:           f.Size,
			UploadedAt:     f.UploadedAt,
		})
	}
	writeOK(w, map[string]any{"files": out})
}

// FileURL временная ссылка на скачивание файла
func (h *CloudHandler) FileURL(w http.ResponseWriter, r *http.Request) {
	fileID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if h.Linker == nil {
		writeError(w, http.StatusServiceUnavailable, "file links are not configured")
		return
	}
	f, err := h.Storage.GetFileInfo(r.Context(), fileID)
	if err != nil {
		h.fail(w, "get file", err)
		return
	}
	url, err := h.Linker.FileURL(r.Context(), f.FileRef)
	if err != nil {
		h.Logger.Warnw("file link failed", "file_id", fileID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to get file from Telegram")
		return
	}
	writeOK(w, map[string]any{"url": url})
}

// DeleteFile удаляет запись о файле
func (h *CloudHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Storage.DeleteFile(r.Context(), fileID); err != nil {
		h.fail(w, "delete file", err)
		return
	}
	writeOK(w, map[string]any{"message": "File deleted"})
}

// DeleteFolder удаляет папку со всеми файлами
func (h *CloudHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.Storage.DeleteFolder(r.Context(), folderID); err != nil {
		h.fail(w, "delete folder", err)
		return
	}
	writeOK(w, map[string]any{"message": "Folder deleted"})
}

// Stats статистика хранилища пользователя
func (h *CloudHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	st, err := h.Storage.GetUserStats(r.Context(), userID)
	if err != nil {
		h.fail(w, "user stats", err)
		return
	}
	if st.TopFolders == nil {
		st.TopFolders = []model.FolderCount{}
	}
	writeOK(w, map[string]any{"stats": st})
}

func (h *CloudHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// fail отвечает 404 на ErrNotFound и 500 на всё остальное.
func (h *CloudHandler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.Logger.Errorw(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeOK(w http.ResponseWriter, body map[string]any) {
	body["success"] = true
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
