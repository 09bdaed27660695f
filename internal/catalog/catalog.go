// Package catalog maps a reference type to the ordered set of task kinds that
// must exist for every reference of that type. The mapping is built once at
// startup, either from the built-in defaults or from a YAML file, and is
// read-only afterwards.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/mtlprog/workforcemgmt/internal/domain"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable reference type -> task kinds mapping.
type Catalog struct {
	kinds map[domain.ReferenceType][]domain.TaskKind
}

// file is the on-disk YAML layout.
type file struct {
	ReferenceTypes map[string][]string `yaml:"reference_types"`
}

// New validates the mapping and returns a Catalog holding a private copy of it.
// Every reference type must map to a non-empty list of distinct, known kinds.
func New(mapping map[domain.ReferenceType][]domain.TaskKind) (*Catalog, error) {
	kinds := make(map[domain.ReferenceType][]domain.TaskKind, len(mapping))
	for refType, list := range mapping {
		if !refType.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReferenceType, refType)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("reference type %s has no task kinds", refType)
		}

		seen := make(map[domain.TaskKind]bool, len(list))
		for _, kind := range list {
			if !kind.IsValid() {
				return nil, fmt.Errorf("%w: %q for reference type %s", domain.ErrInvalidTaskKind, kind, refType)
			}
			if seen[kind] {
				return nil, fmt.Errorf("reference type %s lists task kind %s twice", refType, kind)
			}
			seen[kind] = true
		}
		kinds[refType] = append([]domain.TaskKind(nil), list...)
	}
	return &Catalog{kinds: kinds}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{kinds: map[domain.ReferenceType][]domain.TaskKind{
		domain.ReferenceTypeOrder: {
			domain.TaskKindCreateInvoice,
			domain.TaskKindArrangePickup,
			domain.TaskKindCollectPayment,
		},
		domain.ReferenceTypeEntity: {
			domain.TaskKindAssignCustomerToSalesPerson,
		},
	}}
}

// Parse builds a Catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.ReferenceTypes) == 0 {
		return nil, fmt.Errorf("parse catalog: no reference_types defined")
	}

	mapping := make(map[domain.ReferenceType][]domain.TaskKind, len(f.ReferenceTypes))
	for refType, list := range f.ReferenceTypes {
		kinds := make([]domain.TaskKind, len(list))
		for i, kind := range list {
			kinds[i] = domain.TaskKind(kind)
		}
		mapping[domain.ReferenceType(refType)] = kinds
	}
	return New(mapping)
}

// Load reads and parses a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// KindsFor returns the ordered task kinds for a reference type, or nil when
// the type is unknown. The returned slice is a copy.
func (c *Catalog) KindsFor(refType domain.ReferenceType) []domain.TaskKind {
	list, ok := c.kinds[refType]
	if !ok {
		return nil
	}
	return append([]domain.TaskKind(nil), list...)
}

// ReferenceTypes returns the configured reference types in lexical order.
func (c *Catalog) ReferenceTypes() []domain.ReferenceType {
	types := make([]domain.ReferenceType, 0, len(c.kinds))
	for refType := range c.kinds {
		types = append(types, refType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Marshal renders the catalog in the same YAML layout Parse accepts.
func (c *Catalog) Marshal() ([]byte, error) {
	f := file{ReferenceTypes: make(map[string][]string, len(c.kinds))}
	for refType, list := range c.kinds {
		kinds := make([]string, len(list))
		for i, kind := range list {
			kinds[i] = string(kind)
		}
		f.ReferenceTypes[string(refType)] = kinds
	}
	return yaml.Marshal(f)
}
