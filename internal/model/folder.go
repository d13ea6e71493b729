package model

import "time"

// Folder: папка пользователя. Имя уникально в пределах пользователя.
type Folder struct {
	ID     int64  `gorm:"primaryKey"`
	UserID int64  `gorm:"not null;index:idx_folders_user;uniqueIndex:idx_folders_user_name"`
	Name   string `gorm:"not null;uniqueIndex:idx_folders_user_name"`

	Files []File `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// FolderSummary: папка вместе с количеством файлов в ней.
type FolderSummary struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	FileCount int64
}

// FolderCount: строка рейтинга папок по числу файлов.
type FolderCount struct {
	Name      string `json:"name"`
	FileCount int64  `json:"file_count"`
}

// UserStats: сводная статистика хранилища пользователя.
type UserStats struct {
	TotalFolders   int64         `json:"total_folders"`
	TotalFiles     int64         `json:"total_files"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
	TotalSizeMB    float64       `json:"total_size_mb"`
	TopFolders     []FolderCount `json:"top_folders"`
}
