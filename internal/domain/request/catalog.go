package request

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var catalogYAML []byte

type CatalogEntry struct {
	Key          string `yaml:"key" json:"key"`
	Label        string `yaml:"label" json:"label"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
	ResponseTime string `yaml:"response_time,omitempty" json:"responseTime,omitempty"`
}

type Catalog struct {
	RequestTypes []CatalogEntry `yaml:"request_types" json:"requestTypes"`
	Priorities   []CatalogEntry `yaml:"priorities" json:"priorities"`
	Statuses     []CatalogEntry `yaml:"statuses" json:"statuses"`
}

var catalog = mustLoadCatalog(catalogYAML)

func mustLoadCatalog(raw []byte) Catalog {
	c, err := ParseCatalog(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog decodes a catalog document and checks it is usable.
func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.UnmarshalStrict(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse request catalog: %w", err)
	}
	if len(c.RequestTypes) == 0 || len(c.Priorities) == 0 || len(c.Statuses) == 0 {
		return Catalog{}, fmt.Errorf("request catalog is incomplete")
	}
	seen := map[string]bool{}
	for _, group := range [][]CatalogEntry{c.RequestTypes, c.Priorities, c.Statuses} {
		for _, e := range group {
			if e.Key == "" || e.Label == "" {
				return Catalog{}, fmt.Errorf("request catalog entry %q has no key or label", e.Key)
			}
			if seen[e.Key] {
				return Catalog{}, fmt.Errorf("duplicate request catalog key %q", e.Key)
			}
			seen[e.Key] = true
		}
	}
	return c, nil
}

// GetCatalog returns a copy of the embedded catalog.
func GetCatalog() Catalog {
	return Catalog{
		RequestTypes: append([]CatalogEntry(nil), catalog.RequestTypes...),
		Priorities:   append([]CatalogEntry(nil), catalog.Priorities...),
		Statuses:     append([]CatalogEntry(nil), catalog.Statuses...),
	}
}

func lookup(entries []CatalogEntry, key string) (CatalogEntry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return CatalogEntry{}, false
}
