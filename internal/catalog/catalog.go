// Package catalog holds the immutable registry of case definitions. The
// registry is created once at startup from the embedded configuration and
// never mutated.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lootworks/casesim/internal/domain"
)

//go:embed cases.json
var casesJSON []byte

// Sentinel errors for catalog loading
var (
	ErrDuplicateCaseID = errors.New("duplicate case id")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Config represents the JSON configuration for cases
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Cases []CaseDef `json:"cases"`
}

// CaseDef represents a single case definition in the JSON
type CaseDef struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Price int       `json:"price"` // whole dollars
	Items []ItemDef `json:"items"`
}

// ItemDef represents a single item definition within a case
type ItemDef struct {
	Name     string `json:"name"`
	Rarity   int    `json:"rarity"`
	MinPrice int    `json:"min_price"`
	MaxPrice int    `json:"max_price"`
	Weight   int    `json:"weight"`
	Type     string `json:"type"`
}

// Catalog is the loaded, validated case registry.
type Catalog struct {
	cases []domain.Case
	byID  map[string]*domain.Case
}

// Load parses and validates the embedded case configuration.
func Load() (*Catalog, error) {
	return loadBytes(casesJSON)
}

func loadBytes(data []byte) (*Catalog, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse case config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	c := &Catalog{
		cases: make([]domain.Case, 0, len(config.Cases)),
		byID:  make(map[string]*domain.Case, len(config.Cases)),
	}
	for _, def := range config.Cases {
		items := make([]domain.CatalogItem, 0, len(def.Items))
		for _, item := range def.Items {
			items = append(items, domain.CatalogItem{
				Name:     item.Name,
				Rarity:   domain.Rarity(item.Rarity),
				MinPrice: item.MinPrice,
				MaxPrice: item.MaxPrice,
				Weight:   item.Weight,
				Type:     item.Type,
			})
		}
		c.cases = append(c.cases, domain.Case{
			ID:    def.ID,
			Name:  def.Name,
			Price: domain.Dollars(def.Price),
			Items: items,
		})
	}
	for i := range c.cases {
		c.byID[c.cases[i].ID] = &c.cases[i]
	}

	return c, nil
}

// validate checks the case configuration for errors
func validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(config.Cases) == 0 {
		return fmt.Errorf("%w: no cases defined", ErrInvalidConfig)
	}

	// Track case ids for duplicate detection
	ids := make(map[string]bool, len(config.Cases))

	for i := range config.Cases {
		def := &config.Cases[i]
		if err := validateCaseDef(i, def, ids); err != nil {
			return err
		}
	}

	return nil
}

func validateCaseDef(index int, def *CaseDef, ids map[string]bool) error {
	if def.ID == "" {
		return fmt.Errorf("%w: case at index %d has empty id", ErrInvalidConfig, index)
	}
	if ids[def.ID] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateCaseID, def.ID)
	}
	ids[def.ID] = true

	if def.Name == "" {
		return fmt.Errorf("%w: case '%s' has empty name", ErrInvalidConfig, def.ID)
	}
	if def.Price < 0 {
		return fmt.Errorf("%w: case '%s' has negative price", ErrInvalidConfig, def.ID)
	}
	if len(def.Items) == 0 {
		return fmt.Errorf("%w: case '%s' has empty item pool", ErrInvalidConfig, def.ID)
	}

	totalWeight := 0
	for j := range def.Items {
		item := &def.Items[j]
		if err := validateItemDef(def.ID, j, item); err != nil {
			return err
		}
		totalWeight += item.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("%w: case '%s' has non-positive total weight", ErrInvalidConfig, def.ID)
	}

	return nil
}

func validateItemDef(caseID string, index int, item *ItemDef) error {
	if item.Name == "" {
		return fmt.Errorf("%w: case '%s' item at index %d has empty name", ErrInvalidConfig, caseID, index)
	}
	if item.Rarity < 0 || item.Rarity > int(domain.MaxRarity) {
		return fmt.Errorf("%w: item '%s' has rarity %d outside [0,%d]", ErrInvalidConfig, item.Name, item.Rarity, domain.MaxRarity)
	}
	if item.MinPrice <= 0 || item.MinPrice > item.MaxPrice {
		return fmt.Errorf("%w: item '%s' has invalid price bounds [%d,%d]", ErrInvalidConfig, item.Name, item.MinPrice, item.MaxPrice)
	}
	if item.Weight <= 0 {
		return fmt.Errorf("%w: item '%s' has non-positive weight %d", ErrInvalidConfig, item.Name, item.Weight)
	}
	return nil
}

// Cases returns every case definition in catalog order.
func (c *Catalog) Cases() []domain.Case {
	return c.cases
}

// Case returns the case with the given id.
func (c *Catalog) Case(id string) (*domain.Case, error) {
	def, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCase, id)
	}
	return def, nil
}

// ItemsWithMinRarity returns, in catalog order across all cases, every item
// whose rarity is at least min. Items appearing in several cases appear once
// per occurrence, matching the shop's source pool.
func (c *Catalog) ItemsWithMinRarity(min domain.Rarity) []domain.CatalogItem {
	var items []domain.CatalogItem
	for _, def := range c.cases {
		for _, item := range def.Items {
			if item.Rarity >= min {
				items = append(items, item)
			}
		}
	}
	return items
}
