package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback data is "<action>[:<key>][:<id>]". The platform limits it to 64 bytes.
const (
	actSaveSingle    = "st"
	actSaveBatch     = "sb"
	actViewFolder    = "vf"
	actDeleteFile    = "df"
	actConfirmDelete = "cdf"
	actDeleteFolder  = "xf"
	actCancelDelete  = "cx"
)

const maxCallbackData = 64

var errBadCallback = errors.New("malformed callback data")

type callbackData struct {
	action string
	key    string
	id     int64
}

func saveSingleData(folderID int64) string { return fmt.Sprintf("%s:%d", actSaveSingle, folderID) }

func saveBatchData(key string, folderID int64) string {
	return fmt.Sprintf("%s:%s:%d", actSaveBatch, key, folderID)
}

func viewFolderData(folderID int64) string    { return fmt.Sprintf("%s:%d", actViewFolder, folderID) }
func deleteFileData(fileID int64) string      { return fmt.Sprintf("%s:%d", actDeleteFile, fileID) }
func confirmDeleteData(folderID int64) string { return fmt.Sprintf("%s:%d", actConfirmDelete, folderID) }
func deleteFolderData(folderID int64) string  { return fmt.Sprintf("%s:%d", actDeleteFolder, folderID) }

func parseCallback(data string) (callbackData, error) {
	if data == "" || len(data) > maxCallbackData {
		return callbackData{}, errBadCallback
	}
	action, rest, _ := strings.Cut(data, ":")
	switch action {
	case actCancelDelete:
		return callbackData{action: action}, nil
	case actSaveBatch:
		i := strings.LastIndex(rest, ":")
		if i <= 0 {
			return callbackData{}, errBadCallback
		}
		id, err := strconv.ParseInt(rest[i+1:], 10, 64)
		if err != nil {
			return callbackData{}, errBadCallback
		}
		return callbackData{action: action, key: rest[:i], id: id}, nil
	case actSaveSingle, actViewFolder, actDeleteFile, actConfirmDelete, actDeleteFolder:
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return callbackData{}, errBadCallback
		}
		return callbackData{action: action, id: id}, nil
	}
	return callbackData{}, errBadCallback
}
