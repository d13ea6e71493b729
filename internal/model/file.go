package model

import "time"

// FileType: закрытый набор типов вложений.
type FileType string

const (
	FileTypeDocument FileType = "document"
	FileTypePhoto    FileType = "photo"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
)

// Valid сообщает, входит ли тип в поддерживаемый набор.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeDocument, FileTypePhoto, FileTypeVideo, FileTypeAudio:
		return true
	}
	return false
}

// File: ссылка на файл, хранящийся на стороне платформы.
// Содержимое не сохраняется: FileRef позволяет получить файл заново.
type File struct {
	ID       int64 `gorm:"primaryKey"`
	FolderID int64 `gorm:"not null;index:idx_files_folder"`

	FileRef string   `gorm:"not null"`
	Name    string   `gorm:"index:idx_files_name"`
	Type    FileType `gorm:"not null"`
	Size    *int64

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// FileDescriptor описывает входящий файл до того, как для него выбрана папка.
type FileDescriptor struct {
	FileRef string
	Name    string
	Type    FileType
	Size    *int64
}

// SizeOrZero возвращает размер или 0, если он неизвестен.
func (d FileDescriptor) SizeOrZero() int64 {
	if d.Size == nil {
		return 0
	}
	return *d.Size
}
