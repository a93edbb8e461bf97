package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/thoughts/internal/logger"
)

type DebugCmd struct {
	DBPath  DebugDBPathCmd  `cmd:"" name:"db-path" help:"Show the storage location."`
	LogPath DebugLogPathCmd `cmd:"" name:"log-path" help:"Show the log file location."`
	Dump    DebugDumpCmd    `cmd:"" help:"Dump every raw storage item as JSON."`
}

func (c *Context) printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugLogPathCmd struct{}

func (cmd *DebugLogPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path":    logger.LogPath(ctx.ConfigDir),
		"session": logger.SessionID,
	})
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	items := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := ctx.Store.GetItem(k)
		if err != nil {
			return fmt.Errorf("failed to read item %q: %w", k, err)
		}
		if ok {
			items[k] = v
		}
	}
	return ctx.printJSON(items)
}
