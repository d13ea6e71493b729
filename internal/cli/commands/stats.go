package commands

import (
	"TeleCloud/internal/model"
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

type statsCmd struct{}

func (statsCmd) Name() string        { return "stats" }
func (statsCmd) Description() string { return "Статистика хранилища пользователя" }
func (statsCmd) Usage() string       { return "stats <userId>" }

func (statsCmd) Run(ctx context.Context, env Env, args []string) error {
	userID, err := oneID(args)
	if err != nil {
		return err
	}
	var resp struct {
		Stats model.UserStats `json:"stats"`
	}
	if err := env.API.Get(ctx, fmt.Sprintf("/api/stats/%d", userID), &resp); err != nil {
		return err
	}
	st := resp.Stats
	fmt.Fprintf(env.Out, "Папок: %s\n", humanize.Comma(st.TotalFolders))
	fmt.Fprintf(env.Out, "Файлов: %s\n", humanize.Comma(st.TotalFiles))
	fmt.Fprintf(env.Out, "Объём: %s\n", humanize.IBytes(uint64(st.TotalSizeBytes)))
	for i, f := range st.TopFolders {
		fmt.Fprintf(env.Out, "%d. %s: %d\n", i+1, f.Name, f.FileCount)
	}
	return nil
}

func init() { RegisterCmd(statsCmd{}) }
