// Package state holds the application state of the thoughts list and the
// operations on it. Every operation is a pure function: it takes a State and
// returns a new one, leaving its input untouched.
package state

import (
	"fmt"
	"time"

	"github.com/julianstephens/thoughts/internal/models"
)

// KeyPolicy decides how a new thought's key is chosen
type KeyPolicy string

const (
	// KeyPolicyMonotonic hands out keys from a counter that never goes back.
	KeyPolicyMonotonic KeyPolicy = "monotonic"
	// KeyPolicyLength uses the current list length. Keys can collide after a
	// delete followed by an add; kept for compatibility with existing data.
	KeyPolicyLength KeyPolicy = "length"
)

// ParseKeyPolicy validates a policy name. The empty string selects monotonic.
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch KeyPolicy(s) {
	case "", KeyPolicyMonotonic:
		return KeyPolicyMonotonic, nil
	case KeyPolicyLength:
		return KeyPolicyLength, nil
	default:
		return "", fmt.Errorf("invalid key policy: %q (expected monotonic or length)", s)
	}
}

// State is the whole application state.
type State struct {
	Thoughts []models.Thought
	Draft    string
	// Editing maps a thought key to its uncommitted edit copy. A key is in
	// edit mode exactly when it is present.
	Editing map[int]string
	NextKey int
	Policy  KeyPolicy
}

// New builds a State from loaded data.
func New(thoughts []models.Thought, nextKey int, policy KeyPolicy) State {
	if policy == "" {
		policy = KeyPolicyMonotonic
	}
	s := State{
		Thoughts: append([]models.Thought{}, thoughts...),
		Editing:  map[int]string{},
		NextKey:  nextKey,
		Policy:   policy,
	}
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Thoughts = append([]models.Thought{}, s.Thoughts...)
	c.Editing = make(map[int]string, len(s.Editing))
	for k, v := range s.Editing {
		c.Editing[k] = v
	}
	return c
}

func nowMillis(now time.Time) int64 {
	return now.UnixMilli()
}

// nextKey returns the key for a new thought and the counter value after it.
func nextKey(s State) (key, counter int) {
	if s.Policy == KeyPolicyLength {
		return len(s.Thoughts), s.NextKey
	}

	key = s.NextKey
	for _, t := range s.Thoughts {
		if t.Key >= key {
			key = t.Key + 1
		}
	}
	return key, key + 1
}

// SetDraft replaces the draft text.
func SetDraft(s State, text string) State {
	c := s.Clone()
	c.Draft = text
	return c
}

// Add appends a thought built from the draft and clears the draft. It
// reports false, returning s unchanged, when the draft is empty. Whitespace
// counts as content.
func Add(s State, now time.Time) (State, bool) {
	if len(s.Draft) == 0 {
		return s, false
	}

	c := s.Clone()
	key, counter := nextKey(c)
	c.Thoughts = append(c.Thoughts, models.Thought{
		Key:         key,
		Value:       c.Draft,
		Liked:       false,
		Favorite:    false,
		LastEditted: nowMillis(now),
	})
	c.NextKey = counter
	c.Draft = ""
	return c, true
}

// Edit sets the value and edit time of every thought with the given key.
func Edit(s State, key int, value string, now time.Time) State {
	c := s.Clone()
	for i := range c.Thoughts {
		if c.Thoughts[i].Key == key {
			c.Thoughts[i].Value = value
			c.Thoughts[i].LastEditted = nowMillis(now)
		}
	}
	return c
}

// Delete removes every thought with the given key, keeping the order of the rest.
func Delete(s State, key int) State {
	c := s.Clone()
	kept := c.Thoughts[:0]
	for _, t := range c.Thoughts {
		if t.Key != key {
			kept = append(kept, t)
		}
	}
	c.Thoughts = kept
	delete(c.Editing, key)
	return c
}

// React sets a reaction to a fixed value on every thought with the given key.
func React(s State, key int, r models.Reaction, val bool) State {
	c := s.Clone()
	for i := range c.Thoughts {
		if c.Thoughts[i].Key == key {
			c.Thoughts[i].SetReaction(r, val)
		}
	}
	return c
}

// Toggle flips a reaction on every thought with the given key, based on each
// thought's value in s.
func Toggle(s State, key int, r models.Reaction) State {
	c := s.Clone()
	for i := range c.Thoughts {
		if c.Thoughts[i].Key == key {
			c.Thoughts[i].SetReaction(r, !c.Thoughts[i].Reaction(r))
		}
	}
	return c
}

// IsEditing reports whether the thought with the given key is in edit mode.
func IsEditing(s State, key int) bool {
	_, ok := s.Editing[key]
	return ok
}

// EditDraft returns the uncommitted edit copy for a key.
func EditDraft(s State, key int) (string, bool) {
	v, ok := s.Editing[key]
	return v, ok
}

// BeginEdit puts a thought in edit mode with a copy of its current value.
func BeginEdit(s State, key int) State {
	if IsEditing(s, key) {
		return s
	}
	t, ok := Find(s, key)
	if !ok {
		return s
	}
	c := s.Clone()
	c.Editing[key] = t.Value
	return c
}

// SetEditDraft replaces the edit copy of a thought that is in edit mode.
func SetEditDraft(s State, key int, text string) State {
	if !IsEditing(s, key) {
		return s
	}
	c := s.Clone()
	c.Editing[key] = text
	return c
}

// ToggleEdit switches a thought between viewing and editing. Leaving edit
// mode commits the edit copy.
func ToggleEdit(s State, key int, now time.Time) State {
	draft, ok := s.Editing[key]
	if !ok {
		return BeginEdit(s, key)
	}
	c := Edit(s, key, draft, now)
	delete(c.Editing, key)
	return c
}

// CancelEdit leaves edit mode without committing.
func CancelEdit(s State, key int) State {
	if !IsEditing(s, key) {
		return s
	}
	c := s.Clone()
	delete(c.Editing, key)
	return c
}

// Find returns the first thought with the given key.
func Find(s State, key int) (models.Thought, bool) {
	for _, t := range s.Thoughts {
		if t.Key == key {
			return t, true
		}
	}
	return models.Thought{}, false
}

// LastIndex is the index of the newest thought, or -1 when there are none.
func LastIndex(s State) int {
	return len(s.Thoughts) - 1
}
