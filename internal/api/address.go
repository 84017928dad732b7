package api

import (
	"context"

	"github.com/samber/lo"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// Sectors fetches the Province→District→Sector→Cell→Village tree and
// flattens it to the sector level, which is where the cascading selects
// start. Each sector keeps its cells (and the cells their villages).
func (c *Client) Sectors(ctx context.Context) ([]models.Sector, error) {
	var out struct {
		Data []models.Province `json:"data"`
	}
	if err := c.request(ctx, "GET", "/address/", nil, &out); err != nil {
		return nil, err
	}

	districts := lo.FlatMap(out.Data, func(p models.Province, _ int) []models.District {
		return p.Districts
	})
	sectors := lo.FlatMap(districts, func(d models.District, _ int) []models.Sector {
		return d.Sectors
	})
	return sectors, nil
}
