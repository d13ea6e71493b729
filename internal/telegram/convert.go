package telegram

import (
	"TeleCloud/internal/bot"
	"TeleCloud/internal/model"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// convertUpdate maps a Telegram update to a bot update. Anything other than
// user messages and button presses is skipped.
func convertUpdate(u tgbotapi.Update) (bot.Update, bool) {
	switch {
	case u.CallbackQuery != nil:
		q := u.CallbackQuery
		if q.From == nil || q.Message == nil || q.Message.Chat == nil {
			return bot.Update{}, false
		}
		return bot.Update{Callback: &bot.Callback{
			ID:        q.ID,
			From:      convertUser(q.From),
			ChatID:    q.Message.Chat.ID,
			MessageID: q.Message.MessageID,
			Data:      q.Data,
		}}, true
	case u.Message != nil:
		m := u.Message
		if m.From == nil || m.Chat == nil {
			return bot.Update{}, false
		}
		out := &bot.Message{
			ID:           m.MessageID,
			ChatID:       m.Chat.ID,
			From:         convertUser(m.From),
			Text:         m.Text,
			MediaGroupID: m.MediaGroupID,
			Attachment:   extractAttachment(m),
		}
		if m.IsCommand() {
			out.Command = m.Command()
			out.CommandArgs = m.CommandArguments()
		}
		return bot.Update{Message: out}, true
	}
	return bot.Update{}, false
}

func convertUser(u *tgbotapi.User) bot.User {
	return bot.User{ID: u.ID, Username: u.UserName, FirstName: u.FirstName}
}

// extractAttachment returns the descriptor of the first supported attachment, or nil.
func extractAttachment(m *tgbotapi.Message) *model.FileDescriptor {
	switch {
	case m.Document != nil:
		return fromDocument(m.Document)
	case len(m.Photo) > 0:
		return fromPhoto(m.Photo)
	case m.Video != nil:
		return fromVideo(m.Video)
	case m.Audio != nil:
		return fromAudio(m.Audio)
	}
	return nil
}

func fromDocument(d *tgbotapi.Document) *model.FileDescriptor {
	return &model.FileDescriptor{
		FileRef: d.FileID,
		Name:    nameOr(d.FileName, "document_%s", d.FileUniqueID),
		Type:    model.FileTypeDocument,
		Size:    optionalSize(d.FileSize),
	}
}

// Telegram lists photo sizes smallest first.
func fromPhoto(sizes []tgbotapi.PhotoSize) *model.FileDescriptor {
	p := sizes[len(sizes)-1]
	return &model.FileDescriptor{
		FileRef: p.FileID,
		Name:    fmt.Sprintf("photo_%s.jpg", p.FileUniqueID),
		Type:    model.FileTypePhoto,
		Size:    optionalSize(p.FileSize),
	}
}

func fromVideo(v *tgbotapi.Video) *model.FileDescriptor {
	return &model.FileDescriptor{
		FileRef: v.FileID,
		Name:    nameOr(v.FileName, "video_%s.mp4", v.FileUniqueID),
		Type:    model.FileTypeVideo,
		Size:    optionalSize(v.FileSize),
	}
}

func fromAudio(a *tgbotapi.Audio) *model.FileDescriptor {
	return &model.FileDescriptor{
		FileRef: a.FileID,
		Name:    nameOr(a.FileName, "audio_%s.mp3", a.FileUniqueID),
		Type:    model.FileTypeAudio,
		Size:    optionalSize(a.FileSize),
	}
}

func nameOr(name, format, unique string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf(format, unique)
}

// optionalSize treats 0 as "not reported".
func optionalSize(n int) *int64 {
	if n <= 0 {
		return nil
	}
	v := int64(n)
	return &v
}
