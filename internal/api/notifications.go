package api

import (
	"context"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// Inbox is the normalized /notification response.
type Inbox struct {
	Notifications []models.Notification
	UnreadCount   int
}

// ListNotifications unwraps the {success, data, unreadCount} envelope.
func (c *Client) ListNotifications(ctx context.Context) (Inbox, error) {
	var out struct {
		Success     bool                  `json:"success"`
		Data        []models.Notification `json:"data"`
		UnreadCount int                   `json:"unreadCount"`
	}
	if err := c.request(ctx, "GET", "/notification", nil, &out); err != nil {
		return Inbox{}, err
	}
	return Inbox{Notifications: out.Data, UnreadCount: out.UnreadCount}, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.request(ctx, "PUT", "/notification/read/"+strconv.Itoa(id), struct{}{}, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.request(ctx, "PUT", "/notification/read-all", struct{}{}, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	return c.request(ctx, "DELETE", "/notification/delete/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	return c.request(ctx, "DELETE", "/notification/delete-all", nil, nil)
}
