package catalog

import (
	"context"

	"tour-workers/internal/models"
)

// MemoryStore serves a fixed snapshot in the order it was given.
type MemoryStore struct {
	packages []models.Package
}

func NewMemoryStore(packages ...models.Package) *MemoryStore {
	return &MemoryStore{packages: append([]models.Package(nil), packages...)}
}

func (s *MemoryStore) List(_ context.Context) ([]models.Package, error) {
	return append(make([]models.Package, 0, len(s.packages)), s.packages...), nil
}
