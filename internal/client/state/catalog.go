package state

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/logging"
)

// CatalogFilters narrow the browse listing. Zero values mean "any".
type CatalogFilters struct {
	Provider   models.Provider
	UpdateType models.UpdateType
	SourceType models.SourceType
	StartDate  string
	EndDate    string
}

// Catalog is the emerging-tech listing: browse with filters, or search by
// text with the filters suspended.
type Catalog struct {
	*List[models.EmergingTechItem]

	api client.EmergingTechAPI

	mu      sync.Mutex
	filters CatalogFilters
	query   string
}

func NewCatalog(api client.EmergingTechAPI, pageSize int, log logging.Logger) *Catalog {
	c := &Catalog{api: api}
	c.List = newList[models.EmergingTechItem](pageSize, log, c.fetch)
	return c
}

func (c *Catalog) fetch(ctx context.Context, page, size int) (client.Page[models.EmergingTechItem], error) {
	c.mu.Lock()
	filters, query := c.filters, c.query
	c.mu.Unlock()

	if query != "" {
		return c.api.SearchEmergingTech(ctx, models.EmergingTechSearchParams{Q: query, Page: page, Size: size})
	}
	return c.api.ListEmergingTech(ctx, models.EmergingTechListParams{
		Page:       page,
		Size:       size,
		Provider:   filters.Provider,
		UpdateType: filters.UpdateType,
		SourceType: filters.SourceType,
		StartDate:  filters.StartDate,
		EndDate:    filters.EndDate,
		Sort:       models.CatalogSort,
	})
}

// SetFilters replaces the filters and returns to page 1.
func (c *Catalog) SetFilters(ctx context.Context, f CatalogFilters) error {
	c.mu.Lock()
	if c.query != "" {
		c.mu.Unlock()
		return ErrFiltersSuspended
	}
	c.filters = f
	c.mu.Unlock()

	c.reset(ctx)
	return nil
}

func (c *Catalog) Filters() CatalogFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Search switches to search mode for q at page 1. A blank q clears the
// search.
func (c *Catalog) Search(ctx context.Context, q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		c.ClearSearch(ctx)
		return
	}

	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
	c.reset(ctx)
}

// ClearSearch returns to browsing at page 1.
func (c *Catalog) ClearSearch(ctx context.Context) {
	c.mu.Lock()
	c.query = ""
	c.mu.Unlock()
	c.reset(ctx)
}

func (c *Catalog) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Catalog) Detail(ctx context.Context, id string) (models.EmergingTechItem, error) {
	return c.api.GetEmergingTech(ctx, id)
}
