// Package telegram connects the bot to the Telegram Bot API.
package telegram

import (
	"TeleCloud/internal/bot"
	"TeleCloud/internal/model"
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// API is the subset of *tgbotapi.BotAPI the client uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetFileDirectURL(fileID string) (string, error)
}

// Handler consumes converted updates.
type Handler interface {
	Handle(ctx context.Context, u bot.Update)
}

// Client implements bot.Messenger and resolves download links.
type Client struct {
	api         API
	logger      *zap.SugaredLogger
	pollTimeout int
}

var _ bot.Messenger = (*Client)(nil)

// NewClient logs in with token.
func NewClient(token string, logger *zap.SugaredLogger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	logger.Infow("authorized on telegram", "username", api.Self.UserName)
	return NewClientWithAPI(api, logger), nil
}

// NewClientWithAPI wraps an existing API implementation.
func NewClientWithAPI(api API, logger *zap.SugaredLogger) *Client {
	return &Client{api: api, logger: logger, pollTimeout: 60}
}

// Run long-polls updates and hands them to h one at a time until ctx is done.
func (c *Client) Run(ctx context.Context, h Handler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = c.pollTimeout
	cfg.AllowedUpdates = []string{"message", "callback_query"}
	updates := c.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			bu, ok := convertUpdate(u)
			if !ok {
				continue
			}
			h.Handle(ctx, bu)
		}
	}
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string, kb *bot.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	if markup := inlineKeyboard(kb); markup != nil {
		m.ReplyMarkup = *markup
	}
	_, err := c.api.Send(m)
	return wrap("send message", err)
}

func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *bot.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := tgbotapi.NewEditMessageText(chatID, messageID, text)
	m.ParseMode = tgbotapi.ModeHTML
	m.ReplyMarkup = inlineKeyboard(kb)
	_, err := c.api.Request(m)
	return wrap("edit message", err)
}

func (c *Client) EditCaption(ctx context.Context, chatID int64, messageID int, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
	m.ParseMode = tgbotapi.ModeHTML
	_, err := c.api.Request(m)
	return wrap("edit caption", err)
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	_, err := c.api.Request(cb)
	return wrap("answer callback", err)
}

// SendStoredFile re-sends a file by its Telegram file_id with the sending method of its type.
func (c *Client) SendStoredFile(ctx context.Context, chatID int64, f model.File, caption string, kb *bot.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref := tgbotapi.FileID(f.FileRef)
	var markup any
	if m := inlineKeyboard(kb); m != nil {
		markup = *m
	}

	var msg tgbotapi.Chattable
	switch f.Type {
	case model.FileTypePhoto:
		p := tgbotapi.NewPhoto(chatID, ref)
		p.Caption, p.ReplyMarkup = caption, markup
		msg = p
	case model.FileTypeVideo:
		v := tgbotapi.NewVideo(chatID, ref)
		v.Caption, v.ReplyMarkup = caption, markup
		msg = v
	case model.FileTypeAudio:
		a := tgbotapi.NewAudio(chatID, ref)
		a.Caption, a.ReplyMarkup = caption, markup
		msg = a
	default:
		d := tgbotapi.NewDocument(chatID, ref)
		d.Caption, d.ReplyMarkup = caption, markup
		msg = d
	}
	_, err := c.api.Send(msg)
	return wrap("send "+string(f.Type), err)
}

// FileURL returns a temporary direct download link for a file reference.
func (c *Client) FileURL(ctx context.Context, fileRef string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	u, err := c.api.GetFileDirectURL(fileRef)
	if err != nil {
		return "", wrap("get file", err)
	}
	return u, nil
}

func inlineKeyboard(kb *bot.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(r))
		for _, b := range r {
			if b.URL != "" {
				row = append(row, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("telegram %s: %w", op, err)
}
