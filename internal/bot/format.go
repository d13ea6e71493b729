package bot

import (
	"fmt"
	"html"
	"strings"

	"TeleCloud/internal/model"
)

const mebibyte = 1024 * 1024

// FormatSize renders a byte count as KB below 1 MiB and MB from 1 MiB on,
// both with binary multiples.
func FormatSize(bytes int64) string {
	if bytes < mebibyte {
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/mebibyte)
}

func formatOptionalSize(size *int64) string {
	if size == nil || *size == 0 {
		return "Unknown"
	}
	return FormatSize(*size)
}

func totalSize(items []model.FileDescriptor) int64 {
	var total int64
	for _, it := range items {
		total += it.SizeOrZero()
	}
	return total
}

func esc(s string) string {
	return html.EscapeString(s)
}

func folderKeyboard(folders []model.FolderSummary, data func(folderID int64) string) *Keyboard {
	kb := &Keyboard{}
	for _, f := range folders {
		kb.Rows = append(kb.Rows, []Button{{Text: "📁 " + f.Name, Data: data(f.ID)}})
	}
	return kb
}

func topFoldersText(top []model.FolderCount) string {
	if len(top) == 0 {
		return "No folders yet"
	}
	lines := make([]string, 0, len(top))
	for _, f := range top {
		lines = append(lines, fmt.Sprintf("📁 %s: %d files", esc(f.Name), f.FileCount))
	}
	return strings.Join(lines, "\n")
}

const (
	textNeedFolder        = "❌ You need to create a folder first!\n\nUse /newfolder to create one."
	textFileExpired       = "❌ File data expired. Please send the file again."
	textBatchExpired      = "❌ File data expired. Please send the files again."
	textBatchPromptFailed = "⚠️ Could not offer your folders for this batch. Please send the files again."
	textInternal          = "⚠️ Something went wrong. Please try again."
	textFolderGone        = "❌ This folder no longer exists. Use /myfolders to pick another one."
)
