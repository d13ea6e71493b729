package bot

import "TeleCloud/internal/model"

// User is the sender as reported by the platform. Its ID is trusted as is.
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// Message is an inbound chat message. Attachment is set for document, photo,
// video and audio messages.
type Message struct {
	ID           int
	ChatID       int64
	From         User
	Text         string
	Command      string
	CommandArgs  string
	MediaGroupID string
	Attachment   *model.FileDescriptor
}

// Callback is a press on an inline keyboard button.
type Callback struct {
	ID        string
	From      User
	ChatID    int64
	MessageID int
	Data      string
}

// Update carries exactly one of Message or Callback.
type Update struct {
	Message  *Message
	Callback *Callback
}
