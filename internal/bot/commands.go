package bot

import (
	"TeleCloud/internal/service"
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Command is a slash command.
type Command interface {
	// Name is the command without the slash, e.g. "newfolder".
	Name() string
	// Description is shown in /help.
	Description() string
	Run(ctx context.Context, b *Bot, m *Message) error
}

func (b *Bot) registerCommands() {
	for _, c := range []Command{startCmd{}, helpCmd{}, newFolderCmd{}, cancelCmd{}, myFoldersCmd{}, galleryCmd{}, statsCmd{}} {
		b.commands[c.Name()] = c
	}
}

// listCommands returns the visible commands sorted by name.
func (b *Bot) listCommands() []Command {
	list := make([]Command, 0, len(b.commands))
	for _, c := range b.commands {
		if c.Description() == "" {
			continue
		}
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

func (b *Bot) welcomeText(firstName string) string {
	lines := []string{
		fmt.Sprintf("🌟 <b>Welcome to Cloud Organizer Bot, %s!</b> 🌟", esc(firstName)),
		"",
		"I help you organize your files on Telegram with unlimited storage! 📦",
		"",
		"<b>Available Commands:</b>",
	}
	for _, c := range b.listCommands() {
		lines = append(lines, fmt.Sprintf("/%s - %s", c.Name(), c.Description()))
	}
	lines = append(lines,
		"",
		"<b>How it works:</b>",
		"1️⃣ Create folders to organize your files",
		"2️⃣ Send me any file (photo, video, document, audio)",
		"3️⃣ Choose which folder to store it in",
		"4️⃣ Access your files anytime!",
		"",
		"💡 <b>Pro Tip:</b> Send multiple files at once - I'll ask for destination only once!",
	)
	return strings.Join(lines, "\n")
}

type startCmd struct{}

func (startCmd) Name() string        { return "start" }
func (startCmd) Description() string { return "" }
func (startCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	return b.msg.SendText(ctx, m.ChatID, b.welcomeText(m.From.FirstName), nil)
}

type helpCmd struct{}

func (helpCmd) Name() string        { return "help" }
func (helpCmd) Description() string { return "Show this message" }
func (helpCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	return startCmd{}.Run(ctx, b, m)
}

type newFolderCmd struct{}

func (newFolderCmd) Name() string        { return "newfolder" }
func (newFolderCmd) Description() string { return "Create a new folder" }
func (newFolderCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	// "/newfolder Name" creates right away
	if name := strings.TrimSpace(m.CommandArgs); name != "" {
		return b.createFolderNamed(ctx, m.ChatID, m.From.ID, name)
	}
	b.setAwaitingName(m.From.ID, true)
	return b.msg.SendText(ctx, m.ChatID, "📁 <b>Create New Folder</b>\n\nPlease send me the name for your new folder:", nil)
}

type cancelCmd struct{}

func (cancelCmd) Name() string        { return "cancel" }
func (cancelCmd) Description() string { return "Cancel the current operation" }
func (cancelCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	return b.msg.SendText(ctx, m.ChatID, "Operation cancelled. Use /help to see available commands.", nil)
}

func (b *Bot) createFolder(ctx context.Context, m *Message) error {
	return b.createFolderNamed(ctx, m.ChatID, m.From.ID, m.Text)
}

func (b *Bot) createFolderNamed(ctx context.Context, chatID, userID int64, raw string) error {
	name, err := b.store.CreateFolder(ctx, userID, raw)
	switch {
	case errors.Is(err, service.ErrInvalidFolderName):
		return b.msg.SendText(ctx, chatID,
			fmt.Sprintf("❌ Folder name must be 1 to %d characters long.", b.store.MaxFolderName()), nil)
	case errors.Is(err, service.ErrFolderExists):
		return b.msg.SendText(ctx, chatID,
			fmt.Sprintf("❌ Folder <b>'%s'</b> already exists!\n\nPlease choose a different name.", esc(name)), nil)
	case err != nil:
		return err
	}
	b.logger.Infow("folder created", "user_id", userID, "name", name)
	return b.msg.SendText(ctx, chatID,
		fmt.Sprintf("✅ Folder <b>'%s'</b> created successfully!\n\nYou can now send files and choose this folder to store them.", esc(name)), nil)
}

type myFoldersCmd struct{}

func (myFoldersCmd) Name() string        { return "myfolders" }
func (myFoldersCmd) Description() string { return "View all your folders" }
func (myFoldersCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	folders, err := b.store.ListFolders(ctx, m.From.ID)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		return b.msg.SendText(ctx, m.ChatID, "📂 You don't have any folders yet!\n\nUse /newfolder to create your first folder.", nil)
	}
	kb := &Keyboard{}
	for _, f := range folders {
		kb.Rows = append(kb.Rows, []Button{
			{Text: fmt.Sprintf("📁 %s (%d files)", f.Name, f.FileCount), Data: viewFolderData(f.ID)},
			{Text: "🗑️ Delete", Data: confirmDeleteData(f.ID)},
		})
	}
	text := fmt.Sprintf("📂 <b>Your Folders</b> (%d total):\n\nClick on any folder to view its contents:", len(folders))
	return b.msg.SendText(ctx, m.ChatID, text, kb)
}

type galleryCmd struct{}

func (galleryCmd) Name() string        { return "gallery" }
func (galleryCmd) Description() string { return "🎨 Open web gallery" }
func (galleryCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	link, err := galleryLink(b.galleryURL, m.From.ID)
	if err != nil {
		b.logger.Warnw("gallery link unavailable", "gallery_url", b.galleryURL, "error", err)
		return b.msg.SendText(ctx, m.ChatID, "🎨 The web gallery is not available right now.", nil)
	}
	kb := &Keyboard{Rows: [][]Button{{{Text: "📂 Open Gallery", URL: link}}}}
	return b.msg.SendText(ctx, m.ChatID, "🌟 <b>Open Your Cloud Gallery</b>\n\nClick the button below to browse your files.", kb)
}

func galleryLink(base string, userID int64) (string, error) {
	if base == "" {
		return "", errors.New("gallery url is not configured")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("userId", strconv.FormatInt(userID, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "View your storage statistics" }
func (statsCmd) Run(ctx context.Context, b *Bot, m *Message) error {
	st, err := b.store.GetUserStats(ctx, m.From.ID)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("📊 <b>Your Storage Statistics</b>\n\n"+
		"📁 Total Folders: %s\n"+
		"📎 Total Files: %s\n"+
		"💾 Total Size: %.2f MB\n\n"+
		"🔝 <b>Largest Folders:</b>\n%s\n\n"+
		"Keep organizing! 🚀",
		humanize.Comma(st.TotalFolders), humanize.Comma(st.TotalFiles), st.TotalSizeMB, topFoldersText(st.TopFolders))
	return b.msg.SendText(ctx, m.ChatID, text, nil)
}
