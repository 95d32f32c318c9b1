package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/climatelens/risk-analytics/internal/domain"
	"gopkg.in/yaml.v3"
)

// MaxSearchResults caps the number of matches returned by FindProperties
const MaxSearchResults = 5

//go:embed data/properties.yaml
var propertiesSource []byte

// Catalog is the immutable in-memory property list. It is safe for concurrent reads.
type Catalog struct {
	properties []domain.PropertyRecord
	byID       map[int]int
}

type propertiesFile struct {
	Properties []domain.PropertyRecord `yaml:"properties"`
}

// Load parses the embedded property catalog
func Load() (*Catalog, error) {
	return Parse(propertiesSource)
}

// MustLoad is Load for callers that treat a broken embedded catalog as fatal
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from YAML, validating every record
func Parse(data []byte) (*Catalog, error) {
	var f propertiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse property catalog: %w", err)
	}
	return New(f.Properties)
}

// New builds a catalog from records, preserving their order
func New(records []domain.PropertyRecord) (*Catalog, error) {
	c := &Catalog{
		properties: make([]domain.PropertyRecord, 0, len(records)),
		byID:       make(map[int]int, len(records)),
	}
	for i, p := range records {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("property %d (index %d) invalid: %w", p.ID, i, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate property id %d", p.ID)
		}
		c.byID[p.ID] = len(c.properties)
		c.properties = append(c.properties, p)
	}
	return c, nil
}

// Len returns the number of properties in the catalog
func (c *Catalog) Len() int { return len(c.properties) }

// All returns a copy of every property in insertion order
func (c *Catalog) All() []domain.PropertyRecord {
	out := make([]domain.PropertyRecord, len(c.properties))
	copy(out, c.properties)
	return out
}

// ByID looks up a property by id
func (c *Catalog) ByID(id int) (domain.PropertyRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.PropertyRecord{}, false
	}
	return c.properties[i], true
}

// FindProperties returns up to MaxSearchResults properties whose address, city,
// state, country or client name contains query, ignoring case. Matches keep
// catalog order. A blank query matches nothing.
func (c *Catalog) FindProperties(query string) []domain.PropertyRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.PropertyRecord{}
	}
	matches := make([]domain.PropertyRecord, 0, MaxSearchResults)
	for _, p := range c.properties {
		if !matchesQuery(p, q) {
			continue
		}
		matches = append(matches, p)
		if len(matches) == MaxSearchResults {
			break
		}
	}
	return matches
}

func matchesQuery(p domain.PropertyRecord, q string) bool {
	for _, field := range []string{p.Address, p.City, p.State, p.Country, p.ClientName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
