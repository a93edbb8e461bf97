package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/thoughts/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateKey    ConflictType = "duplicate_key"
	ConflictNegativeKey     ConflictType = "negative_key"
	ConflictFutureTimestamp ConflictType = "future_timestamp"
	ConflictStaleCounter    ConflictType = "stale_counter"
)

// Conflict represents a problem detected in a stored thought list
type Conflict struct {
	Type        ConflictType
	Description string
	Keys        []int
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks thought lists for inconsistencies
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// ValidateThoughts reports keys shared by several thoughts (which edit,
// delete and react all affect together), negative keys, and edit times in
// the future.
func (v *Validator) ValidateThoughts(thoughts []models.Thought) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	counts := make(map[int]int)
	for _, t := range thoughts {
		counts[t.Key]++
	}
	var dups []int
	for k, n := range counts {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Ints(dups)
	for _, k := range dups {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateKey,
			Description: fmt.Sprintf("key %d is shared by %d thoughts", k, counts[k]),
			Keys:        []int{k},
		})
	}

	nowMillis := v.now().UnixMilli()
	for _, t := range thoughts {
		if t.Key < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeKey,
				Description: fmt.Sprintf("thought has negative key %d", t.Key),
				Keys:        []int{t.Key},
			})
		}
		if t.LastEditted > nowMillis {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureTimestamp,
				Description: fmt.Sprintf("thought %d was edited in the future (%s)", t.Key, t.LastEdittedTime().Format(time.RFC3339)),
				Keys:        []int{t.Key},
			})
		}
	}

	return result
}

// ValidateCounter reports a monotonic key counter that is not ahead of
// every stored key.
func (v *Validator) ValidateCounter(thoughts []models.Thought, nextKey int) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var behind []int
	for _, t := range thoughts {
		if t.Key >= nextKey {
			behind = append(behind, t.Key)
		}
	}
	if len(behind) > 0 {
		sort.Ints(behind)
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictStaleCounter,
			Description: fmt.Sprintf("key counter %d is not ahead of %d stored key(s)", nextKey, len(behind)),
			Keys:        behind,
		})
	}
	return result
}
