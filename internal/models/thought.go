package models

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/thoughts/internal/constants"
)

// Reaction names a boolean flag attached to a thought
type Reaction string

const (
	ReactionLiked    Reaction = "liked"
	ReactionFavorite Reaction = "favorite"
)

// ParseReaction converts a field name into a Reaction
func ParseReaction(s string) (Reaction, error) {
	switch Reaction(s) {
	case ReactionLiked, ReactionFavorite:
		return Reaction(s), nil
	default:
		return "", fmt.Errorf("invalid reaction: %q (expected liked or favorite)", s)
	}
}

// Thought is a single user-authored note. The JSON layout is the storage format.
type Thought struct {
	Key         int    `json:"key"`
	Value       string `json:"value"`
	Liked       bool   `json:"liked"`
	Favorite    bool   `json:"favorite"`
	LastEditted int64  `json:"lastEditted"` // epoch milliseconds
}

// Reaction returns the current value of the given reaction flag.
func (t Thought) Reaction(r Reaction) bool {
	switch r {
	case ReactionLiked:
		return t.Liked
	case ReactionFavorite:
		return t.Favorite
	}
	return false
}

// SetReaction sets the given reaction flag. Unknown reactions are ignored.
func (t *Thought) SetReaction(r Reaction, val bool) {
	switch r {
	case ReactionLiked:
		t.Liked = val
	case ReactionFavorite:
		t.Favorite = val
	}
}

// LastEdittedTime returns LastEditted as a time.Time
func (t Thought) LastEdittedTime() time.Time {
	return time.UnixMilli(t.LastEditted)
}

// MinutesSince returns the number of minutes between lastEditted and now,
// rounded up. One second ago is 1 minute; exactly now is 0.
func MinutesSince(lastEditted int64, now time.Time) int {
	elapsed := float64(now.UnixMilli() - lastEditted)
	return int(math.Ceil(elapsed / constants.MillisPerMinute))
}
