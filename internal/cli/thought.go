package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/thoughts/internal/models"
)

type AddCmd struct {
	Text []string `arg:"" help:"Thought text."`
}

func (c *AddCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}

	t, added, err := ctrl.AddText(strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("thought text cannot be empty")
	}
	ctx.printf("Added thought %d\n", t.Key)
	return nil
}

type ListCmd struct {
	JSON bool `help:"Print the list in the storage format."`
}

func (c *ListCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}

	thoughts := ctrl.Thoughts()
	if c.JSON {
		data, err := json.MarshalIndent(thoughts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal thoughts: %w", err)
		}
		ctx.println(string(data))
		return nil
	}

	if len(thoughts) == 0 {
		ctx.println("No thoughts yet.")
		return nil
	}

	now := time.Now()
	for _, t := range thoughts {
		ctx.printf("  [%d] %s %s  (%d min ago)\n", t.Key, flags(t), t.Value, models.MinutesSince(t.LastEditted, now))
	}
	return nil
}

func flags(t models.Thought) string {
	like, fav := "-", "-"
	if t.Liked {
		like = "L"
	}
	if t.Favorite {
		fav = "F"
	}
	return like + fav
}

type EditCmd struct {
	Key   int      `arg:"" help:"Key of the thought to edit."`
	Value []string `arg:"" help:"New text."`
}

func (c *EditCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	if _, err := find(ctrl, c.Key); err != nil {
		return err
	}

	if err := ctrl.Edit(c.Key, strings.Join(c.Value, " ")); err != nil {
		return err
	}
	ctx.printf("Edited thought %d\n", c.Key)
	return nil
}

type DeleteCmd struct {
	Key int  `arg:"" help:"Key of the thought to delete."`
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	t, err := find(ctrl, c.Key)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm("Delete this thought?", t.Value)
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Delete cancelled.")
			return nil
		}
	}

	if err := ctrl.Delete(c.Key); err != nil {
		return err
	}
	ctx.printf("Deleted thought %d\n", c.Key)
	return nil
}

// toggle flips one reaction and reports its new value
func toggle(ctx *Context, key int, r models.Reaction) error {
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	if _, err := find(ctrl, key); err != nil {
		return err
	}

	if err := ctrl.Toggle(key, r); err != nil {
		return err
	}
	t, _ := ctrl.Find(key)
	ctx.printf("Thought %d %s: %t\n", key, r, t.Reaction(r))
	return nil
}

type LikeCmd struct {
	Key int `arg:"" help:"Key of the thought to like or unlike."`
}

func (c *LikeCmd) Run(ctx *Context) error {
	return toggle(ctx, c.Key, models.ReactionLiked)
}

type FavoriteCmd struct {
	Key int `arg:"" help:"Key of the thought to favorite or unfavorite."`
}

func (c *FavoriteCmd) Run(ctx *Context) error {
	return toggle(ctx, c.Key, models.ReactionFavorite)
}

type ReactCmd struct {
	Key      int    `arg:"" help:"Key of the thought."`
	Reaction string `arg:"" help:"Reaction to set (liked|favorite)." enum:"liked,favorite"`
	Value    bool   `arg:"" help:"Value to set (true|false)."`
}

func (c *ReactCmd) Run(ctx *Context) error {
	r, err := models.ParseReaction(c.Reaction)
	if err != nil {
		return err
	}
	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}
	if _, err := find(ctrl, c.Key); err != nil {
		return err
	}

	if err := ctrl.React(c.Key, r, c.Value); err != nil {
		return err
	}
	ctx.printf("Thought %d %s: %t\n", c.Key, r, c.Value)
	return nil
}
