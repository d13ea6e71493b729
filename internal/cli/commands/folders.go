package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

type foldersCmd struct{}

func (foldersCmd) Name() string        { return "folders" }
func (foldersCmd) Description() string { return "Показать папки пользователя" }
func (foldersCmd) Usage() string       { return "folders <userId>" }

func (foldersCmd) Run(ctx context.Context, env Env, args []string) error {
	userID, err := oneID(args)
	if err != nil {
		return err
	}
	var resp struct {
		Folders []folderView `json:"folders"`
	}
	if err := env.API.Get(ctx, fmt.Sprintf("/api/folders/%d", userID), &resp); err != nil {
		return err
	}
	if len(resp.Folders) == 0 {
		fmt.Fprintln(env.Out, "Нет папок")
		return nil
	}
	for _, f := range resp.Folders {
		fmt.Fprintf(env.Out, "- %d  %s  files=%d  created %s\n", f.ID, f.Name, f.FileCount, humanize.Time(f.CreatedAt))
	}
	fmt.Fprintf(env.Out, "Всего: %d\n", len(resp.Folders))
	return nil
}

type rmFolderCmd struct{}

func (rmFolderCmd) Name() string        { return "rm-folder" }
func (rmFolderCmd) Description() string { return "Удалить папку вместе с файлами" }
func (rmFolderCmd) Usage() string       { return "rm-folder <folderId>" }

func (rmFolderCmd) Run(ctx context.Context, env Env, args []string) error {
	folderID, err := oneID(args)
	if err != nil {
		return err
	}
	if err := env.API.Delete(ctx, fmt.Sprintf("/api/folders/%d", folderID), nil); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Папка %d удалена\n", folderID)
	return nil
}

func init() {
	RegisterCmd(foldersCmd{})
	RegisterCmd(rmFolderCmd{})
}
