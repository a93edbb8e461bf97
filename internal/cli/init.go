package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/thoughts/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt for --force."`
	Source string `help:"Store path or connection string to copy thoughts from."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized thoughts storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.printf("Copying thoughts from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.printf("Copied %d thought(s).\n", n)
	}
	return nil
}

// reset deletes a file-backed store after confirmation
func (c *InitCmd) reset(ctx *Context) error {
	if !ctx.FileBacked() {
		return c.clear(ctx)
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing store: %w", err)
	}

	if !c.Yes {
		ok, err := ctx.confirm("Delete the existing store?", fmt.Sprintf("All thoughts in %s will be lost.", dbPath))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("init cancelled")
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing store: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing store: %w", err)
	}
	ctx.printf("Deleted existing store at: %s\n", dbPath)
	return nil
}

// clear removes every item from a database store after confirmation
func (c *InitCmd) clear(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		if errors.Is(err, storage.ErrNotInitialized) {
			return nil
		}
		return fmt.Errorf("failed to load existing store: %w", err)
	}

	if !c.Yes {
		ok, err := ctx.confirm("Clear the existing store?", fmt.Sprintf("All thoughts in %s will be lost.", ctx.Store.GetConfigPath()))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("init cancelled")
		}
	}

	n, err := clearItems(ctx.Store)
	if err != nil {
		return err
	}
	ctx.printf("Removed %d item(s) from: %s\n", n, ctx.Store.GetConfigPath())
	// Init opens its own connection
	return ctx.Store.Close()
}

func clearItems(p storage.Provider) (int, error) {
	keys, err := p.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}
	for _, k := range keys {
		if err := p.RemoveItem(k); err != nil {
			return 0, fmt.Errorf("failed to remove item %q: %w", k, err)
		}
	}
	return len(keys), nil
}

// copyFrom copies the thought list and key counter from another store
func (c *InitCmd) copyFrom(ctx *Context) (int, error) {
	if storage.IsPostgresConnString(c.Source) {
		if err := storage.ValidateConnString(c.Source); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return 0, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return 0, err
		}
	}

	source := storage.New(c.Source)
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	thoughts, err := storage.LoadThoughts(source)
	if err != nil {
		return 0, err
	}
	next, err := storage.LoadNextKey(source)
	if err != nil {
		return 0, err
	}

	if err := storage.SaveThoughts(ctx.Store, thoughts); err != nil {
		return 0, fmt.Errorf("failed to save thoughts: %w", err)
	}
	if next > 0 {
		if err := storage.SaveNextKey(ctx.Store, next); err != nil {
			return 0, fmt.Errorf("failed to save key counter: %w", err)
		}
	}
	return len(thoughts), nil
}
