package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/storage"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	raw, ok, err := ctx.Store.GetItem(constants.ThoughtsKey)
	if err != nil {
		return fmt.Errorf("failed to read thoughts: %w", err)
	}
	if !ok {
		raw = "[]"
	}

	if c.Output == "" {
		ctx.println(raw)
		return nil
	}
	if err := os.WriteFile(c.Output, []byte(raw+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.printf("Exported thoughts to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"JSON array of thoughts, as written by export." type:"existingfile"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	thoughts, err := storage.ParseThoughts(data)
	if err != nil {
		return err
	}

	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}

	if existing := len(ctrl.Thoughts()); existing > 0 && !c.Yes {
		ok, err := ctx.confirm("Replace existing thoughts?",
			fmt.Sprintf("%d thought(s) will be replaced by %d from %s.", existing, len(thoughts), c.File))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Import cancelled.")
			return nil
		}
	}

	if err := ctrl.Replace(thoughts); err != nil {
		return err
	}
	ctx.printf("Imported %d thought(s)\n", len(thoughts))
	return nil
}
