package sheet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/mma-picks/internal/card"
	"github.com/pfrederiksen/mma-picks/internal/config"
	"github.com/pfrederiksen/mma-picks/internal/pick"
	"gopkg.in/yaml.v3"
)

// ReadEntries loads picks rows from an .xlsx, .yaml/.yml or .json file. Each row
// is normalized: a finish keeps only its round and a decision only its score.
func ReadEntries(path string) ([]pick.Entry, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i] = entries[i].Normalize()
	}
	return entries, nil
}

func readEntries(path string) ([]pick.Entry, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return readWorkbook(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading picks: %w", err)
	}

	var entries []pick.Entry
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	case ".json":
		err = json.Unmarshal(data, &entries)
	default:
		return nil, fmt.Errorf("unsupported picks file %q: want .xlsx, .yaml or .json", filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing picks: %w", err)
	}

	return entries, nil
}

// WriteCard saves a card as JSON, creating parent directories as needed
func WriteCard(path string, c *card.Card) error {
	path, err := prepare(path)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing card: %w", err)
	}

	return nil
}

// ReadCard loads a card saved by WriteCard
func ReadCard(path string) (*card.Card, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card: %w", err)
	}

	var c card.Card
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing card: %w", err)
	}

	// Ensure Fights is never nil
	if c.Fights == nil {
		c.Fights = []card.Bout{}
	}

	return &c, nil
}

// prepare expands path and creates its parent directory
func prepare(path string) (string, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	return path, nil
}
