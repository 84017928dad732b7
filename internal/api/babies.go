package api

import (
	"context"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// CreateBaby adds a baby to an existing born record. Medications travel
// inside the payload; the parent's babyCount is the server's to keep.
func (c *Client) CreateBaby(ctx context.Context, b models.Baby) (models.Baby, error) {
	var out models.Baby
	if err := c.request(ctx, "POST", "/babies", b, &out); err != nil {
		return models.Baby{}, err
	}
	return out, nil
}

func (c *Client) UpdateBaby(ctx context.Context, b models.Baby) (models.Baby, error) {
	var out models.Baby
	if err := c.request(ctx, "PUT", "/babies/"+strconv.Itoa(b.ID), b, &out); err != nil {
		return models.Baby{}, err
	}
	return out, nil
}

func (c *Client) DeleteBaby(ctx context.Context, id int) error {
	return c.request(ctx, "DELETE", "/babies/"+strconv.Itoa(id), nil, nil)
}
