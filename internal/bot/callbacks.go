package bot

import (
	"TeleCloud/internal/model"
	"TeleCloud/internal/pending"
	"TeleCloud/internal/service"
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

func (b *Bot) handleCallback(ctx context.Context, c *Callback) {
	data, err := parseCallback(c.Data)
	if err != nil {
		b.logger.Warnw("bad callback data", "user_id", c.From.ID, "data", c.Data)
		b.answer(ctx, c, "❌ Unknown action", false)
		return
	}

	// delete-file answers with its own alert
	if data.action != actDeleteFile {
		b.answer(ctx, c, "", false)
	}

	switch data.action {
	case actSaveSingle:
		err = b.saveSingle(ctx, c, data.id)
	case actSaveBatch:
		err = b.saveBatch(ctx, c, data.key, data.id)
	case actViewFolder:
		err = b.viewFolder(ctx, c, data.id)
	case actDeleteFile:
		err = b.deleteFile(ctx, c, data.id)
	case actConfirmDelete:
		err = b.confirmDeleteFolder(ctx, c, data.id)
	case actDeleteFolder:
		err = b.deleteFolder(ctx, c, data.id)
	case actCancelDelete:
		err = b.msg.EditText(ctx, c.ChatID, c.MessageID, "❌ Deletion cancelled.\n\nUse /myfolders to view your folders.", nil)
	}
	if err != nil {
		b.logger.Errorw("callback handling failed", "user_id", c.From.ID, "action", data.action, "error", err)
		b.reply(ctx, c.ChatID, textInternal)
	}
}

func (b *Bot) answer(ctx context.Context, c *Callback, text string, alert bool) {
	if err := b.msg.AnswerCallback(ctx, c.ID, text, alert); err != nil {
		b.logger.Warnw("answer callback failed", "callback_id", c.ID, "error", err)
	}
}

// ownedFolder returns the folder if it exists and belongs to userID.
func (b *Bot) ownedFolder(ctx context.Context, userID, folderID int64) (*model.Folder, error) {
	f, err := b.store.GetFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if f.UserID != userID {
		return nil, service.ErrNotFound
	}
	return f, nil
}

func (b *Bot) saveSingle(ctx context.Context, c *Callback, folderID int64) error {
	d, err := b.pending.ResolveSingle(c.From.ID)
	if errors.Is(err, pending.ErrExpired) {
		return b.msg.EditText(ctx, c.ChatID, c.MessageID, textFileExpired, nil)
	}

	if _, err := b.ownedFolder(ctx, c.From.ID, folderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return b.msg.EditText(ctx, c.ChatID, c.MessageID, textFolderGone, nil)
		}
		return err
	}

	if _, err := b.store.AddFile(ctx, folderID, d); err != nil {
		b.logger.Errorw("save file failed", "user_id", c.From.ID, "folder_id", folderID, "error", err)
		return b.msg.EditText(ctx, c.ChatID, c.MessageID, "❌ Could not save the file. Please send it again.", nil)
	}
	text := fmt.Sprintf("✅ <b>File saved successfully!</b>\n\n📎 %s\nUse /myfolders to view all your files.", esc(d.Name))
	return b.msg.EditText(ctx, c.ChatID, c.MessageID, text, nil)
}

func (b *Bot) saveBatch(ctx context.Context, c *Callback, key string, folderID int64) error {
	// the entry is gone from here on, whatever happens to the writes
	items, err := b.pending.ResolveBatch(key)
	if errors.Is(err, pending.ErrExpired) {
		return b.msg.EditText(ctx, c.ChatID, c.MessageID, textBatchExpired, nil)
	}

	if _, err := b.ownedFolder(ctx, c.From.ID, folderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return b.msg.EditText(ctx, c.ChatID, c.MessageID, textFolderGone, nil)
		}
		return err
	}

	saved, failed := 0, 0
	for _, d := range items {
		if _, err := b.store.AddFile(ctx, folderID, d); err != nil {
			failed++
			b.logger.Errorw("save batch item failed", "key", key, "folder_id", folderID, "file", d.Name, "error", err)
			continue
		}
		saved++
	}
	b.logger.Infow("batch saved", "key", key, "folder_id", folderID, "saved", saved, "failed", failed)

	text := fmt.Sprintf("✅ <b>Batch Upload Complete!</b>\n\n📦 Saved %d files successfully!", saved)
	if failed > 0 {
		text += fmt.Sprintf("\n⚠️ %d files could not be saved.", failed)
	}
	text += "\nUse /myfolders to view all your files."
	return b.msg.EditText(ctx, c.ChatID, c.MessageID, text, nil)
}

func (b *Bot) viewFolder(ctx context.Context, c *Callback, folderID int64) error {
	folder, err := b.ownedFolder(ctx, c.From.ID, folderID)
	if errors.Is(err, service.ErrNotFound) {
		return b.msg.EditText(ctx, c.ChatID, c.MessageID, textFolderGone, nil)
	}
	if err != nil {
		return err
	}

	files, err := b.store.ListFiles(ctx, folderID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return b.msg.EditText(ctx, c.ChatID, c.MessageID, "📂 This folder is empty!\n\nSend me files to add them to this folder.", nil)
	}

	total := len(files)
	shown := files
	if total > b.maxFiles {
		shown = files[:b.maxFiles]
	}

	header := fmt.Sprintf("📂 <b>%s</b>\n🕒 Created %s\n\n📊 Total files: %d\n📤 Sending files...",
		esc(folder.Name), humanize.Time(folder.CreatedAt), total)
	if err := b.msg.EditText(ctx, c.ChatID, c.MessageID, header, nil); err != nil {
		b.logger.Warnw("edit folder header failed", "folder_id", folderID, "error", err)
	}

	sent, failed := 0, 0
	for _, f := range shown {
		caption := fmt.Sprintf("📎 %s\n📊 %s", f.Name, formatOptionalSize(f.Size))
		kb := &Keyboard{Rows: [][]Button{{{Text: "🗑️ Delete This File", Data: deleteFileData(f.ID)}}}}
		if err := b.msg.SendStoredFile(ctx, c.ChatID, f, caption, kb); err != nil {
			failed++
			b.logger.Errorw("send stored file failed", "file_id", f.ID, "name", f.Name, "error", err)
			continue
		}
		sent++
	}

	summary := fmt.Sprintf("✅ Sent %d files successfully!", sent)
	if failed > 0 {
		summary += fmt.Sprintf("\n⚠️ %d files failed to send (may have been deleted from Telegram)", failed)
	}
	if total > b.maxFiles {
		summary += fmt.Sprintf("\n\n📝 Note: Only showing first %d files out of %d total.", b.maxFiles, total)
	}
	return b.msg.SendText(ctx, c.ChatID, summary, nil)
}

func (b *Bot) deleteFile(ctx context.Context, c *Callback, fileID int64) error {
	f, err := b.store.GetFileInfo(ctx, fileID)
	if errors.Is(err, service.ErrNotFound) {
		b.answer(ctx, c, "❌ File not found!", true)
		return nil
	}
	if err != nil {
		b.answer(ctx, c, "", false)
		return err
	}
	if _, err := b.ownedFolder(ctx, c.From.ID, f.FolderID); err != nil {
		b.answer(ctx, c, "❌ File not found!", true)
		if errors.Is(err, service.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := b.store.DeleteFile(ctx, fileID); err != nil && !errors.Is(err, service.ErrNotFound) {
		b.answer(ctx, c, "", false)
		return err
	}

	caption := fmt.Sprintf("🗑️ <b>DELETED</b>\n\n❌ %s\nThis file has been removed from your cloud.", esc(f.Name))
	if err := b.msg.EditCaption(ctx, c.ChatID, c.MessageID, caption); err != nil {
		b.logger.Warnw("edit caption failed", "file_id", fileID, "error", err)
	}
	b.answer(ctx, c, "✅ File deleted successfully!", true)
	return nil
}

func (b *Bot) confirmDeleteFolder(ctx context.Context, c *Callback, folderID int64) error {
	kb := &Keyboard{Rows: [][]Button{{
		{Text: "✅ Yes, Delete", Data: deleteFolderData(folderID)},
		{Text: "❌ Cancel", Data: actCancelDelete},
	}}}
	text := "⚠️ <b>Delete Folder Confirmation</b>\n\n" +
		"Are you sure you want to delete this folder?\n" +
		"This will delete ALL files inside it!\n\n" +
		"This action cannot be undone."
	return b.msg.EditText(ctx, c.ChatID, c.MessageID, text, kb)
}

func (b *Bot) deleteFolder(ctx context.Context, c *Callback, folderID int64) error {
	_, err := b.ownedFolder(ctx, c.From.ID, folderID)
	if err == nil {
		err = b.store.DeleteFolder(ctx, folderID)
	}
	if errors.Is(err, service.ErrNotFound) {
		return b.msg.EditText(ctx, c.ChatID, c.MessageID, "❌ Folder not found. It may have been deleted already.", nil)
	}
	if err != nil {
		return err
	}
	text := "✅ <b>Folder Deleted!</b>\n\nThe folder and all its files have been removed.\n\nUse /myfolders to see your remaining folders."
	return b.msg.EditText(ctx, c.ChatID, c.MessageID, text, nil)
}
