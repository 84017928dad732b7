package api

import (
	"context"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

func (c *Client) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := c.request(ctx, "GET", "/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	var out models.Appointment
	if err := c.request(ctx, "POST", "/appointments", a, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, a models.Appointment) error {
	return c.request(ctx, "PUT", "/appointments/"+strconv.Itoa(a.ID), a, nil)
}

// CreateFeedback records a clinical outcome. The upstream flips the
// appointment to Completed as a side effect.
func (c *Client) CreateFeedback(ctx context.Context, f models.AppointmentFeedback) error {
	return c.request(ctx, "POST", "/appointmentFeedbacks", f, nil)
}

// ListFeedback returns the feedback entries for one appointment. A 404 means
// no feedback yet, which callers treat as an empty list rather than an
// error.
func (c *Client) ListFeedback(ctx context.Context, appointmentID int) ([]models.AppointmentFeedback, error) {
	var out []models.AppointmentFeedback
	err := c.request(ctx, "GET", "/appointmentFeedbacks/"+strconv.Itoa(appointmentID), nil, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}
