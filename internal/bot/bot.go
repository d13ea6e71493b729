// Package bot routes platform updates: commands, incoming files and button presses.
package bot

import (
	"TeleCloud/internal/batch"
	"TeleCloud/internal/pending"
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxFilesToShow limits how many files a folder view re-sends.
const DefaultMaxFilesToShow = 20

// Options configures a Bot.
type Options struct {
	Storage   Storage
	Messenger Messenger
	Pending   *pending.Registry
	Clock     batch.Clock
	Policy    batch.Policy
	Logger    *zap.SugaredLogger

	GalleryURL     string
	MaxFilesToShow int
}

// Bot dispatches updates. Media groups go through the batch aggregator, so
// Handle returns without waiting for a group to settle.
type Bot struct {
	store   Storage
	msg     Messenger
	pending *pending.Registry
	agg     *batch.Aggregator
	logger  *zap.SugaredLogger

	galleryURL string
	maxFiles   int

	commands map[string]Command

	mu           sync.Mutex
	awaitingName map[int64]bool
}

// New creates a Bot and its aggregator.
func New(o Options) *Bot {
	if o.Pending == nil {
		o.Pending = pending.NewRegistry()
	}
	if o.Clock == nil {
		o.Clock = batch.NewSystemClock()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	if o.MaxFilesToShow <= 0 {
		o.MaxFilesToShow = DefaultMaxFilesToShow
	}
	b := &Bot{
		store:        o.Storage,
		msg:          o.Messenger,
		pending:      o.Pending,
		logger:       o.Logger,
		galleryURL:   o.GalleryURL,
		maxFiles:     o.MaxFilesToShow,
		commands:     make(map[string]Command),
		awaitingName: make(map[int64]bool),
	}
	b.agg = batch.New(o.Policy, o.Clock, b.presentBatch, o.Logger)
	b.registerCommands()
	return b
}

// Close stops the aggregator; unsettled media groups are dropped.
func (b *Bot) Close() {
	b.agg.Close()
}

// Handle processes one update. Failures are reported to the user and logged, never returned.
func (b *Bot) Handle(ctx context.Context, u Update) {
	switch {
	case u.Callback != nil:
		b.handleCallback(ctx, u.Callback)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *Message) {
	if err := b.store.RegisterUser(ctx, m.From.ID, m.From.Username, m.From.FirstName); err != nil {
		b.logger.Warnw("register user failed", "user_id", m.From.ID, "error", err)
	}

	var err error
	switch {
	case m.Attachment != nil:
		err = b.handleFile(ctx, m)
	case m.Command != "":
		err = b.runCommand(ctx, m)
	case b.takeAwaitingName(m.From.ID):
		err = b.createFolder(ctx, m)
	default:
		err = b.msg.SendText(ctx, m.ChatID, "Send me a file to store it, or use /help to see what I can do.", nil)
	}
	if err != nil {
		b.logger.Errorw("message handling failed", "user_id", m.From.ID, "command", m.Command, "error", err)
		b.reply(ctx, m.ChatID, textInternal)
	}
}

func (b *Bot) runCommand(ctx context.Context, m *Message) error {
	name := strings.ToLower(m.Command)
	c, ok := b.commands[name]
	if !ok {
		return b.msg.SendText(ctx, m.ChatID, "Unknown command: /"+esc(name)+"\n\nUse /help to see available commands.", nil)
	}
	// any command ends a pending folder-name prompt; /newfolder starts a new one
	b.setAwaitingName(m.From.ID, false)
	return c.Run(ctx, b, m)
}

func (b *Bot) setAwaitingName(userID int64, v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v {
		b.awaitingName[userID] = true
		return
	}
	delete(b.awaitingName, userID)
}

func (b *Bot) takeAwaitingName(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.awaitingName[userID] {
		return false
	}
	delete(b.awaitingName, userID)
	return true
}

// reply sends a best-effort notice; a failure is only logged.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.msg.SendText(ctx, chatID, text, nil); err != nil {
		b.logger.Warnw("send failed", "chat_id", chatID, "error", err)
	}
}
