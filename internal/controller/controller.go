package controller

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/thoughts/internal/logger"
	"github.com/julianstephens/thoughts/internal/models"
	"github.com/julianstephens/thoughts/internal/state"
	"github.com/julianstephens/thoughts/internal/storage"
)

// Options configures a Controller
type Options struct {
	Policy state.KeyPolicy
	// Now defaults to time.Now
	Now func() time.Time
}

// Controller owns the application state. Each mutating call computes the
// new state, persists it, and only then commits it; on a failed save the
// previous state is kept and the error returned. Not safe for concurrent use.
type Controller struct {
	store storage.Provider
	state state.State
	now   func() time.Time
}

// New loads the thought list from a loaded store.
func New(store storage.Provider, opts Options) (*Controller, error) {
	thoughts, err := storage.LoadThoughts(store)
	if err != nil {
		return nil, err
	}
	next, err := storage.LoadNextKey(store)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	logger.Debug("Loaded thoughts", "count", len(thoughts), "next_key", next, "policy", opts.Policy)
	return &Controller{
		store: store,
		state: state.New(thoughts, next, opts.Policy),
		now:   now,
	}, nil
}

// State returns a snapshot callers may keep or modify freely.
func (c *Controller) State() state.State {
	return c.state.Clone()
}

// Thoughts returns a copy of the current list
func (c *Controller) Thoughts() []models.Thought {
	return append([]models.Thought{}, c.state.Thoughts...)
}

// ConfigPath describes where the data is saved
func (c *Controller) ConfigPath() string {
	return c.store.GetConfigPath()
}

// commit persists next when its list or counter differ from the current
// state, then makes it current.
func (c *Controller) commit(op string, next state.State) error {
	listChanged := !slices.Equal(c.state.Thoughts, next.Thoughts)
	counterChanged := next.Policy == state.KeyPolicyMonotonic && next.NextKey != c.state.NextKey

	if listChanged {
		if err := storage.SaveThoughts(c.store, next.Thoughts); err != nil {
			logger.Error("Failed to save thoughts", "op", op, "error", err)
			return fmt.Errorf("failed to save thoughts: %w", err)
		}
	}
	if counterChanged {
		if err := storage.SaveNextKey(c.store, next.NextKey); err != nil {
			logger.Error("Failed to save key counter", "op", op, "error", err)
			if listChanged {
				// Put the previous list back so the slots stay consistent
				if rbErr := storage.SaveThoughts(c.store, c.state.Thoughts); rbErr != nil {
					logger.Error("Failed to restore thoughts after counter failure", "op", op, "error", rbErr)
				}
			}
			return fmt.Errorf("failed to save key counter: %w", err)
		}
	}

	c.state = next
	if listChanged {
		logger.Debug("Saved thoughts", "op", op, "count", len(next.Thoughts))
	}
	return nil
}

// SetDraft updates the draft text. Drafts are not persisted.
func (c *Controller) SetDraft(text string) {
	c.state = state.SetDraft(c.state, text)
}

// Draft returns the current draft text
func (c *Controller) Draft() string {
	return c.state.Draft
}

// Add turns the draft into a new thought. It returns false without error
// when the draft is empty.
func (c *Controller) Add() (models.Thought, bool, error) {
	next, ok := state.Add(c.state, c.now())
	if !ok {
		return models.Thought{}, false, nil
	}
	if err := c.commit("add", next); err != nil {
		return models.Thought{}, false, err
	}
	return next.Thoughts[state.LastIndex(next)], true, nil
}

// AddText sets the draft and adds it in one step.
func (c *Controller) AddText(text string) (models.Thought, bool, error) {
	prev := c.state.Draft
	c.SetDraft(text)
	t, ok, err := c.Add()
	if err != nil || !ok {
		c.SetDraft(prev)
	}
	return t, ok, err
}

// Edit replaces the value of every thought with the given key.
func (c *Controller) Edit(key int, value string) error {
	return c.commit("edit", state.Edit(c.state, key, value, c.now()))
}

// Delete removes every thought with the given key.
func (c *Controller) Delete(key int) error {
	return c.commit("delete", state.Delete(c.state, key))
}

// React sets a reaction to a fixed value.
func (c *Controller) React(key int, r models.Reaction, val bool) error {
	return c.commit("react", state.React(c.state, key, r, val))
}

// Toggle flips a reaction based on the current state.
func (c *Controller) Toggle(key int, r models.Reaction) error {
	return c.commit("toggle", state.Toggle(c.state, key, r))
}

// BeginEdit puts a thought into edit mode.
func (c *Controller) BeginEdit(key int) {
	c.state = state.BeginEdit(c.state, key)
}

// SetEditDraft updates the edit copy of a thought in edit mode.
func (c *Controller) SetEditDraft(key int, text string) {
	c.state = state.SetEditDraft(c.state, key, text)
}

// ToggleEdit enters edit mode, or commits the edit copy and leaves it.
func (c *Controller) ToggleEdit(key int) error {
	return c.commit("toggle_edit", state.ToggleEdit(c.state, key, c.now()))
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit(key int) {
	c.state = state.CancelEdit(c.state, key)
}

// IsEditing reports whether a thought is in edit mode
func (c *Controller) IsEditing(key int) bool {
	return state.IsEditing(c.state, key)
}

// EditDraft returns the edit copy of a thought in edit mode
func (c *Controller) EditDraft(key int) (string, bool) {
	return state.EditDraft(c.state, key)
}

// Find returns the first thought with the given key
func (c *Controller) Find(key int) (models.Thought, bool) {
	return state.Find(c.state, key)
}

// Replace swaps the whole list, keeping the key counter ahead of every
// imported key.
func (c *Controller) Replace(thoughts []models.Thought) error {
	next := state.New(thoughts, c.state.NextKey, c.state.Policy)
	for _, t := range thoughts {
		if t.Key >= next.NextKey {
			next.NextKey = t.Key + 1
		}
	}
	next.Draft = c.state.Draft
	return c.commit("replace", next)
}
