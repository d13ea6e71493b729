package commands

import (
	"strconv"
	"time"
)

// oneID разбирает единственный числовой аргумент команды.
func oneID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, ErrUsage
	}
	return id, nil
}

type folderView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	FileCount int64     `json:"file_count"`
}

type fileView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       *int64    `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
