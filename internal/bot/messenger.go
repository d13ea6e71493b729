package bot

import (
	"TeleCloud/internal/model"
	"context"
)

// Button is an inline keyboard button: either callback Data or a URL.
type Button struct {
	Text string
	Data string
	URL  string
}

// Keyboard is an inline keyboard, row by row.
type Keyboard struct {
	Rows [][]Button
}

// Messenger sends replies through the platform. Texts use HTML markup.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) error
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
	// SendStoredFile re-sends a stored file by its platform reference.
	SendStoredFile(ctx context.Context, chatID int64, f model.File, caption string, kb *Keyboard) error
}

// Storage is the part of the metadata store the bot works with.
type Storage interface {
	RegisterUser(ctx context.Context, id int64, username, firstName string) error
	CreateFolder(ctx context.Context, userID int64, name string) (string, error)
	ListFolders(ctx context.Context, userID int64) ([]model.FolderSummary, error)
	GetFolder(ctx context.Context, folderID int64) (*model.Folder, error)
	AddFile(ctx context.Context, folderID int64, d model.FileDescriptor) (*model.File, error)
	ListFiles(ctx context.Context, folderID int64) ([]model.File, error)
	GetFileInfo(ctx context.Context, fileID int64) (*model.File, error)
	DeleteFile(ctx context.Context, fileID int64) error
	DeleteFolder(ctx context.Context, folderID int64) error
	GetUserStats(ctx context.Context, userID int64) (model.UserStats, error)
	MaxFolderName() int
}
