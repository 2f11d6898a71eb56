// Package catalog holds the static expedition catalog and the sample posts
// shown on a fresh install. Both are embedded YAML documents.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rupaladventures/basecamp/internal/domain"
)

//go:embed expeditions.yaml
var expeditionsYAML []byte

//go:embed sample_posts.yaml
var samplePostsYAML []byte

// Catalog is the read-only set of expeditions and sample posts.
type Catalog struct {
	expeditions []domain.Expedition
	byID        map[string]int
	samplePosts []domain.PostInput
}

// Load parses the embedded documents.
func Load() (*Catalog, error) {
	return Parse(expeditionsYAML, samplePostsYAML)
}

// Parse builds a Catalog from YAML documents. Expedition ids must be present
// and unique and every sample post must carry a known type.
func Parse(expeditions, samplePosts []byte) (*Catalog, error) {
	c := &Catalog{byID: map[string]int{}}
	if err := yaml.Unmarshal(expeditions, &c.expeditions); err != nil {
		return nil, fmt.Errorf("catalog: parse expeditions: %w", err)
	}
	for i, e := range c.expeditions {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("catalog: expedition %d: id and name are required", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate expedition id %q", e.ID)
		}
		c.byID[e.ID] = i
	}

	if err := yaml.Unmarshal(samplePosts, &c.samplePosts); err != nil {
		return nil, fmt.Errorf("catalog: parse sample posts: %w", err)
	}
	for i, p := range c.samplePosts {
		if !p.Type.Valid() {
			return nil, fmt.Errorf("catalog: sample post %d: unknown type %q", i, p.Type)
		}
	}
	return c, nil
}

// Expeditions returns every expedition in catalog order.
func (c *Catalog) Expeditions() []domain.Expedition {
	out := make([]domain.Expedition, len(c.expeditions))
	copy(out, c.expeditions)
	return out
}

// Expedition looks one expedition up by id.
// Returns domain.ErrNotFound for an unknown id.
func (c *Catalog) Expedition(id string) (domain.Expedition, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Expedition{}, fmt.Errorf("catalog: expedition %q: %w", id, domain.ErrNotFound)
	}
	return c.expeditions[i], nil
}

// SamplePosts returns the posts seeded into an empty post store.
func (c *Catalog) SamplePosts() []domain.PostInput {
	out := make([]domain.PostInput, len(c.samplePosts))
	copy(out, c.samplePosts)
	return out
}
