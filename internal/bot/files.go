package bot

import (
	"TeleCloud/internal/batch"
	"context"
	"fmt"
)

func (b *Bot) handleFile(ctx context.Context, m *Message) error {
	d := *m.Attachment
	if m.MediaGroupID != "" {
		b.agg.Add(batch.Owner{UserID: m.From.ID, ChatID: m.ChatID}, m.MediaGroupID, d)
		return nil
	}

	folders, err := b.store.ListFolders(ctx, m.From.ID)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		return b.msg.SendText(ctx, m.ChatID, textNeedFolder, nil)
	}

	b.pending.PutSingle(m.From.ID, d)
	text := fmt.Sprintf("📎 <b>File Received:</b> %s\n📊 <b>Size:</b> %s\n📁 <b>Type:</b> %s\n\nChoose a folder to save this file:",
		esc(d.Name), FormatSize(d.SizeOrZero()), d.Type)
	return b.msg.SendText(ctx, m.ChatID, text, folderKeyboard(folders, saveSingleData))
}

// presentBatch receives settled media groups from the aggregator.
func (b *Bot) presentBatch(ctx context.Context, bt batch.Batch) {
	folders, err := b.store.ListFolders(ctx, bt.Owner.UserID)
	if err != nil {
		b.logger.Errorw("list folders for batch failed", "group_id", bt.GroupID, "user_id", bt.Owner.UserID, "error", err)
		b.reply(ctx, bt.Owner.ChatID, "⚠️ Could not load your folders. Please send the files again.")
		return
	}
	if len(folders) == 0 {
		b.reply(ctx, bt.Owner.ChatID, textNeedFolder)
		return
	}

	key := b.pending.PutBatch(bt.GroupID, bt.Items)
	text := fmt.Sprintf("📦 <b>Batch Upload Detected!</b>\n\n📎 Files: %d\n📊 Total Size: %s\n\nChoose a folder to save all these files:",
		len(bt.Items), FormatSize(totalSize(bt.Items)))
	kb := folderKeyboard(folders, func(folderID int64) string { return saveBatchData(key, folderID) })
	if err := b.msg.SendText(ctx, bt.Owner.ChatID, text, kb); err != nil {
		// without the prompt nobody can resolve the entry
		b.pending.DiscardBatch(key)
		b.logger.Errorw("batch prompt failed", "group_id", bt.GroupID, "user_id", bt.Owner.UserID, "error", err)
		b.reply(ctx, bt.Owner.ChatID, textBatchPromptFailed)
	}
}
