package client

import (
	"context"

	"github.com/dmitrijs2005/technai/internal/client/models"
)

const emergingTechBase = "/api/v1/emerging-tech"

func (c *HTTPClient) ListEmergingTech(ctx context.Context, p models.EmergingTechListParams) (Page[models.EmergingTechItem], error) {
	return callPage[models.EmergingTechItem, ItemsPage[models.EmergingTechItem]](ctx, c, get(emergingTechBase, p.Query()), true)
}

func (c *HTTPClient) SearchEmergingTech(ctx context.Context, p models.EmergingTechSearchParams) (Page[models.EmergingTechItem], error) {
	return callPage[models.EmergingTechItem, ItemsPage[models.EmergingTechItem]](ctx, c, get(emergingTechBase+"/search", p.Query()), true)
}

func (c *HTTPClient) GetEmergingTech(ctx context.Context, id string) (models.EmergingTechItem, error) {
	return callPublic[models.EmergingTechItem](ctx, c, get(path(emergingTechBase, id), nil))
}
