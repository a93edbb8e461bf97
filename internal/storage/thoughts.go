package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/models"
)

// LoadThoughts reads the thought list from its storage slot. A missing or
// null slot yields an empty list; a malformed one is an error.
func LoadThoughts(p Provider) ([]models.Thought, error) {
	raw, ok, err := p.GetItem(constants.ThoughtsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Thought{}, nil
	}
	return ParseThoughts([]byte(raw))
}

// ParseThoughts decodes a serialized thought list
func ParseThoughts(data []byte) ([]models.Thought, error) {
	var thoughts []models.Thought
	if err := json.Unmarshal(data, &thoughts); err != nil {
		return nil, fmt.Errorf("failed to parse stored thoughts: %w", err)
	}
	if thoughts == nil {
		thoughts = []models.Thought{}
	}
	return thoughts, nil
}

// SaveThoughts serializes the full list and overwrites the storage slot.
func SaveThoughts(p Provider, thoughts []models.Thought) error {
	if thoughts == nil {
		thoughts = []models.Thought{}
	}
	data, err := json.Marshal(thoughts)
	if err != nil {
		return fmt.Errorf("failed to serialize thoughts: %w", err)
	}
	return p.SetItem(constants.ThoughtsKey, string(data))
}

// LoadNextKey returns the persisted key counter, 0 when absent.
func LoadNextKey(p Provider) (int, error) {
	raw, ok, err := p.GetItem(constants.NextKeyKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", constants.NextKeyKey, err)
	}
	return n, nil
}

func SaveNextKey(p Provider, n int) error {
	return p.SetItem(constants.NextKeyKey, strconv.Itoa(n))
}
