package api

import (
	"context"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// ListUsers unwraps the {allUsers: [...]} envelope this one endpoint uses.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out struct {
		AllUsers []models.User `json:"allUsers"`
	}
	if err := c.request(ctx, "GET", "/users", nil, &out); err != nil {
		return nil, err
	}
	return out.AllUsers, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (models.User, error) {
	var out models.User
	if err := c.request(ctx, "GET", "/users/"+strconv.Itoa(id), nil, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) Statistics(ctx context.Context) (models.Statistics, error) {
	var out models.Statistics
	if err := c.request(ctx, "GET", "/users/statistics", nil, &out); err != nil {
		return models.Statistics{}, err
	}
	return out, nil
}

func (c *Client) AddUser(ctx context.Context, u models.User) error {
	return c.request(ctx, "POST", "/users/addUser", u, nil)
}

func (c *Client) UpdateUser(ctx context.Context, u models.User) error {
	return c.request(ctx, "PUT", "/users/update/"+strconv.Itoa(u.ID), u, nil)
}

func (c *Client) ActivateUser(ctx context.Context, id int) error {
	return c.request(ctx, "PUT", "/users/activate/"+strconv.Itoa(id), struct{}{}, nil)
}

func (c *Client) DeactivateUser(ctx context.Context, id int) error {
	return c.request(ctx, "PUT", "/users/deactivate/"+strconv.Itoa(id), struct{}{}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.request(ctx, "DELETE", "/users/delete/"+strconv.Itoa(id), nil, nil)
}

// ChangePassword is the self-service password change from the account page.
func (c *Client) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword, confirmPassword string) error {
	in := map[string]string{
		"oldPassword":     oldPassword,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.request(ctx, "PUT", "/users/changePassword/"+strconv.Itoa(userID), in, nil)
}
