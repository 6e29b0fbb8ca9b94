// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed/default.yaml
var defaultSeed []byte

// seedFile is the YAML layout of a seed file.
type seedFile struct {
	Items []NewItem `yaml:"items"`
}

// DefaultSeed returns the built-in seed items.
func DefaultSeed() ([]NewItem, error) {
	return parseSeed(defaultSeed)
}

// LoadSeedFile reads seed items from a YAML file on disk.
func LoadSeedFile(path string) ([]NewItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scrapbook: failed to read seed file %s: %w", path, err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]NewItem, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("scrapbook: invalid seed file: %w", err)
	}
	return file.Items, nil
}

// Seed creates items through the service, but only when the store is empty.
// It returns how many items were inserted.
func Seed(ctx context.Context, service *Service, items []NewItem, logger *slog.Logger) (int, error) {
	existing, err := service.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		logger.InfoContext(ctx, "seed_skipped", slog.Int("existing_items", existing))
		return 0, nil
	}

	for index, input := range items {
		if _, err := service.CreateItem(ctx, input); err != nil {
			return index, fmt.Errorf("scrapbook: seed item %d: %w", index+1, err)
		}
	}

	logger.InfoContext(ctx, "seed_completed", slog.Int("items", len(items)))
	return len(items), nil
}
