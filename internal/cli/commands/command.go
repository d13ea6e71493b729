package commands

import (
	"TeleCloud/internal/cli/api"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUsage возвращается командой, когда аргументы не подходят и нужно показать Usage.
var ErrUsage = errors.New("usage")

// Env: окружение одного запуска команды.
type Env struct {
	API *api.Client
	Out io.Writer
}

// Command: подкоманда cloudctl.
type Command interface {
	Name() string
	Description() string
	// Usage без имени программы, например "folders <userId>".
	Usage() string
	Run(ctx context.Context, env Env, args []string) error
}

var registry = map[string]Command{}

// RegisterCmd добавляет команду в реестр. Вызывается из init() файла команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

func lookup(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

func sortedCommands() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

func writeGlobalUsage(w io.Writer) {
	fmt.Fprintln(w, "TeleCloud operator CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cloudctl [-base-url <host:port>] [-https] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range sortedCommands() {
		fmt.Fprintf(w, "  %-22s %s\n", c.Usage(), c.Description())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage, 3 not found, 4 server unavailable")
}
