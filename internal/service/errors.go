package service

import "errors"

var (
	// ErrNotFound: папка или файл отсутствуют.
	ErrNotFound = errors.New("not found")

	// ErrFolderExists: у пользователя уже есть папка с таким именем.
	ErrFolderExists = errors.New("folder already exists")

	// ErrInvalidFolderName: пустое или слишком длинное имя папки.
	ErrInvalidFolderName = errors.New("invalid folder name")

	// ErrInvalidFileType: тип вложения вне поддерживаемого набора.
	ErrInvalidFileType = errors.New("invalid file type")
)
