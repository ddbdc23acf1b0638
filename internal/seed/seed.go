// Package seed provides the mock inventory the console starts with.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

//go:embed products.yaml
var defaultDataset []byte

// Dataset is the initial state of the store. Categories lists extra registry
// entries; the categories of the products are always registered.
type Dataset struct {
	Categories []string         `yaml:"categories"`
	Products   []domain.Product `yaml:"products"`
}

// Load returns the dataset in path, or the embedded one when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Parse(defaultDataset)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and checks a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(ds.Products))
	for i, p := range ds.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %d: id is required", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i+1, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Status == "" {
			ds.Products[i].Status = domain.StatusActive
		}
		if p.LastUpdated.IsZero() || p.DateAdded.IsZero() {
			return nil, fmt.Errorf("product %q: lastUpdated and dateAdded are required", p.ID)
		}
		if err := domain.DraftFromProduct(ds.Products[i]).Validate(); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}
	}
	if len(ds.Products) == 0 && len(ds.Categories) == 0 {
		return nil, errors.New("seed is empty")
	}
	return &ds, nil
}
