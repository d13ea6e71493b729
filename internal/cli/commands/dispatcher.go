package commands

import (
	"TeleCloud/internal/cli/api"
	"TeleCloud/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Коды выхода cloudctl.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitNotFound    = 3
	ExitUnavailable = 4
)

// Dispatch запускает команду из args (флаги уже разобраны) и возвращает код выхода.
// Весь вывод, включая ошибки, пишется в out.
func Dispatch(ctx context.Context, cfg *config.Config, args []string, out io.Writer) int {
	if len(args) == 0 {
		writeGlobalUsage(out)
		return ExitUsage
	}

	if args[0] == "help" {
		if len(args) == 1 {
			writeGlobalUsage(out)
			return ExitOK
		}
		c, ok := lookup(args[1])
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s\n\n", args[1])
			writeGlobalUsage(out)
			return ExitUsage
		}
		fmt.Fprintf(out, "Usage: cloudctl %s\n", c.Usage())
		return ExitOK
	}

	c, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(out, "Unknown command: %s\n\n", args[0])
		writeGlobalUsage(out)
		return ExitUsage
	}
	for _, a := range args[1:] {
		if a == "-h" || a == "--help" {
			fmt.Fprintf(out, "Usage: cloudctl %s\n", c.Usage())
			return ExitOK
		}
	}

	env := Env{API: api.NewClient(cfg.ServerURL), Out: out}
	err := c.Run(ctx, env, args[1:])
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintf(out, "Usage: cloudctl %s\n", c.Usage())
		return ExitUsage
	}
	code, msg := describe(err, cfg.ServerURL)
	fmt.Fprintf(out, "%s: %s\n", c.Name(), msg)
	return code
}

// describe переводит ошибку команды в код выхода и текст для оператора.
func describe(err error, serverURL string) (int, string) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			return ExitNotFound, "not found: " + apiErr.Message
		case apiErr.Status == http.StatusBadRequest:
			return ExitUsage, "rejected by server: " + apiErr.Message
		case apiErr.Status == http.StatusServiceUnavailable, apiErr.Status == http.StatusBadGateway:
			return ExitUnavailable, "server cannot reach Telegram: " + apiErr.Message
		case apiErr.Status >= http.StatusInternalServerError:
			return ExitUnavailable, apiErr.Error()
		}
		return ExitFailure, apiErr.Error()
	}
	if errors.Is(err, context.Canceled) {
		return ExitFailure, "interrupted"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ExitUnavailable, fmt.Sprintf("server %s is unreachable: %v", serverURL, urlErr.Err)
	}
	return ExitFailure, err.Error()
}
