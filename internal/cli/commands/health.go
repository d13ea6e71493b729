package commands

import (
	"context"
	"fmt"
)

type healthCmd struct{}

func (healthCmd) Name() string        { return "health" }
func (healthCmd) Description() string { return "Проверить доступность сервера" }
func (healthCmd) Usage() string       { return "health" }

func (healthCmd) Run(ctx context.Context, env Env, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := env.API.Get(ctx, "/api/health", &resp); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "%s: %s (%s)\n", env.API.ServerURL, resp.Status, resp.Message)
	return nil
}

func init() { RegisterCmd(healthCmd{}) }
