package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/thoughts/internal/backup"
	"github.com/julianstephens/thoughts/internal/controller"
	"github.com/julianstephens/thoughts/internal/logger"
	"github.com/julianstephens/thoughts/internal/models"
	"github.com/julianstephens/thoughts/internal/storage"
)

// ErrThoughtNotFound is returned for commands naming an unknown key
var ErrThoughtNotFound = errors.New("thought not found")

type Context struct {
	Store   storage.Provider
	Options controller.Options
	// ConfigDir holds logs, and backups for file storage
	ConfigDir string
	// Out defaults to stdout
	Out io.Writer
	// Confirm asks a yes/no question; defaults to a huh prompt
	Confirm func(title, description string) (bool, error)

	ctrl *controller.Controller
}

// Controller builds the controller on first use from the loaded store.
func (c *Context) Controller() (*controller.Controller, error) {
	if c.ctrl != nil {
		return c.ctrl, nil
	}
	ctrl, err := controller.New(c.Store, c.Options)
	if err != nil {
		return nil, err
	}
	c.ctrl = ctrl
	return ctrl, nil
}

func (c *Context) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) confirm(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// FileBacked reports whether the store lives in a local file
func (c *Context) FileBacked() bool {
	return !storage.IsPostgresConnString(c.Store.GetConfigPath())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.FileBacked() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// find returns the thought with key or ErrThoughtNotFound
func find(ctrl *controller.Controller, key int) (models.Thought, error) {
	t, ok := ctrl.Find(key)
	if !ok {
		return models.Thought{}, fmt.Errorf("%w: %d", ErrThoughtNotFound, key)
	}
	return t, nil
}
