package app

import (
	"context"
	"fmt"
	"net/url"

	"dealerhub/internal/domain"
)

// InventoryService proxies car-inventory searches. Exactly one upstream
// endpoint is chosen per request; when several filters are supplied the
// precedence is year > make > model > mileage > price.
type InventoryService struct {
	client domain.InventoryClient
}

func NewInventoryService(c domain.InventoryClient) *InventoryService {
	return &InventoryService{client: c}
}

func (s *InventoryService) SearchCars(ctx context.Context, dealerID int64, filters url.Values) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("/cars/%d", dealerID)
	switch {
	case filters.Has("year"):
		endpoint = fmt.Sprintf("/carsbyyear/%d/%s", dealerID, url.PathEscape(filters.Get("year")))
	case filters.Has("make"):
		endpoint = fmt.Sprintf("/carsbymake/%d/%s", dealerID, url.PathEscape(filters.Get("make")))
	case filters.Has("model"):
		endpoint = fmt.Sprintf("/carsbymodel/%d/%s", dealerID, url.PathEscape(filters.Get("model")))
	case filters.Has("mileage"):
		endpoint = fmt.Sprintf("/carsbymaxmileage/%d/%s", dealerID, url.PathEscape(filters.Get("mileage")))
	case filters.Has("price"):
		endpoint = fmt.Sprintf("/carsbyprice/%d/%s", dealerID, url.PathEscape(filters.Get("price")))
	}
	return s.client.SearchCars(ctx, endpoint)
}
