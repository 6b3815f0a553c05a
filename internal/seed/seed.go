// Package seed loads the café's starting menu into an empty database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var menuYAML []byte

type menuFile struct {
	Items []menuEntry `yaml:"items"`
}

type menuEntry struct {
	Name        string             `yaml:"name"`
	Category    string             `yaml:"category"`
	Price       int64              `yaml:"price"`
	Description string             `yaml:"description"`
	ImageURL    string             `yaml:"image_url"`
	Options     *model.OptionGroup `yaml:"options"`
}

// ParseMenu decodes a menu document.
func ParseMenu(raw []byte) ([]model.MenuItem, error) {
	var f menuFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	items := make([]model.MenuItem, 0, len(f.Items))
	for i, e := range f.Items {
		if e.Name == "" || e.Category == "" || e.Price < 0 {
			return nil, fmt.Errorf("parse menu: item %d is incomplete", i)
		}
		items = append(items, model.MenuItem{
			Name:        e.Name,
			Category:    e.Category,
			Price:       decimal.NewFromInt(e.Price),
			Description: e.Description,
			ImageURL:    e.ImageURL,
			Options:     e.Options,
		})
	}
	return items, nil
}

// DefaultMenu returns the embedded menu.
func DefaultMenu() ([]model.MenuItem, error) {
	return ParseMenu(menuYAML)
}

// Menu inserts the embedded menu when the catalog is empty and reports how
// many items it created.
func Menu(ctx context.Context, repo repository.MenuRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	items, err := DefaultMenu()
	if err != nil {
		return 0, err
	}
	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			return i, fmt.Errorf("seed %s: %w", items[i].Name, err)
		}
	}

	logrus.WithField("items", len(items)).Info("menu seeded")
	return len(items), nil
}
