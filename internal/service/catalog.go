package service

import (
	"github.com/rupaladventures/basecamp/internal/catalog"
	"github.com/rupaladventures/basecamp/internal/domain"
)

// CatalogService serves the static expedition catalog.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService wraps a loaded catalog.
func NewCatalogService(c *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: c}
}

// List returns every expedition in catalog order.
func (s *CatalogService) List() []domain.Expedition {
	return s.catalog.Expeditions()
}

// Get returns one expedition. Returns domain.ErrNotFound for an unknown id.
func (s *CatalogService) Get(id string) (domain.Expedition, error) {
	return s.catalog.Expedition(id)
}

// SamplePosts returns the posts used to seed an empty post store.
func (s *CatalogService) SamplePosts() []domain.PostInput {
	return s.catalog.SamplePosts()
}
