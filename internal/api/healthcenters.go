package api

import (
	"context"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

func (c *Client) ListHealthCenters(ctx context.Context) ([]models.HealthCenter, error) {
	var out []models.HealthCenter
	if err := c.request(ctx, "GET", "/healthcenters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHealthCenter(ctx context.Context, hc models.HealthCenter) error {
	return c.request(ctx, "POST", "/healthcenters", hc, nil)
}

func (c *Client) UpdateHealthCenter(ctx context.Context, hc models.HealthCenter) error {
	return c.request(ctx, "PUT", "/healthcenters/"+strconv.Itoa(hc.ID), hc, nil)
}

func (c *Client) DeleteHealthCenter(ctx context.Context, id int) error {
	return c.request(ctx, "DELETE", "/healthcenters/"+strconv.Itoa(id), nil, nil)
}
