package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

type filesCmd struct{}

func (filesCmd) Name() string        { return "files" }
func (filesCmd) Description() string { return "Показать файлы папки" }
func (filesCmd) Usage() string       { return "files <folderId>" }

func (filesCmd) Run(ctx context.Context, env Env, args []string) error {
	folderID, err := oneID(args)
	if err != nil {
		return err
	}
	var resp struct {
		Files []fileView `json:"files"`
	}
	if err := env.API.Get(ctx, fmt.Sprintf("/api/folders/%d/files", folderID), &resp); err != nil {
		return err
	}
	if len(resp.Files) == 0 {
		fmt.Fprintln(env.Out, "Папка пуста")
		return nil
	}
	for _, f := range resp.Files {
		size := "?"
		if f.Size != nil {
			size = humanize.IBytes(uint64(*f.Size))
		}
		fmt.Fprintf(env.Out, "- %d  %s  %s  %s\n", f.ID, f.Name, f.Type, size)
	}
	fmt.Fprintf(env.Out, "Всего: %d\n", len(resp.Files))
	return nil
}

type urlCmd struct{}

func (urlCmd) Name() string        { return "url" }
func (urlCmd) Description() string { return "Получить ссылку на скачивание файла" }
func (urlCmd) Usage() string       { return "url <fileId>" }

func (urlCmd) Run(ctx context.Context, env Env, args []string) error {
	fileID, err := oneID(args)
	if err != nil {
		return err
	}
	var resp struct {
		URL string `json:"url"`
	}
	if err := env.API.Get(ctx, fmt.Sprintf("/api/file/%d/url", fileID), &resp); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, resp.URL)
	return nil
}

type rmFileCmd struct{}

func (rmFileCmd) Name() string        { return "rm-file" }
func (rmFileCmd) Description() string { return "Удалить файл" }
func (rmFileCmd) Usage() string       { return "rm-file <fileId>" }

func (rmFileCmd) Run(ctx context.Context, env Env, args []string) error {
	fileID, err := oneID(args)
	if err != nil {
		return err
	}
	if err := env.API.Delete(ctx, fmt.Sprintf("/api/files/%d", fileID), nil); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Файл %d удалён\n", fileID)
	return nil
}

func init() {
	RegisterCmd(filesCmd{})
	RegisterCmd(urlCmd{})
	RegisterCmd(rmFileCmd{})
}
