package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shark062/EridesSouzaStudio/internal/model"
)

// Catalog is the static lookup of bookable services. Declaration order
// is the stable listing order.
type Catalog struct {
	services []model.Service
	byID     map[int]model.Service
}

// Default returns the built-in studio catalog.
func Default() *Catalog {
	return New([]model.Service{
		{
			ID:          1,
			Name:        "Manicure Clássica",
			Description: "Cuidado completo das unhas das mãos",
			Price:       25.00,
			Duration:    45,
			Category:    "manicure",
			Icon:        "💅",
		},
		{
			ID:          2,
			Name:        "Pedicure Spa",
			Description: "Tratamento relaxante para os pés",
			Price:       35.00,
			Duration:    60,
			Category:    "pedicure",
			Icon:        "🦶",
		},
		{
			ID:          3,
			Name:        "Manicure + Pedicure",
			Description: "Pacote completo com desconto especial",
			Price:       50.00,
			Duration:    90,
			Category:    "combo",
			Icon:        "✨",
		},
	})
}

// New builds a catalog preserving the given order.
func New(services []model.Service) *Catalog {
	byID := make(map[int]model.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	return &Catalog{services: services, byID: byID}
}

// LoadFile reads a catalog override from a JSON array on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var services []model.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no services", path)
	}
	return New(services), nil
}

// Get looks a service up by id.
func (c *Catalog) Get(id int) (model.Service, bool) {
	svc, ok := c.byID[id]
	return svc, ok
}

// List returns services in declaration order.
func (c *Catalog) List() []model.Service {
	out := make([]model.Service, len(c.services))
	copy(out, c.services)
	return out
}
