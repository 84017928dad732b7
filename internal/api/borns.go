package api

import (
	"context"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// ListBorns returns every born record. The endpoint answers with a bare
// array.
func (c *Client) ListBorns(ctx context.Context) ([]models.Born, error) {
	var out []models.Born
	if err := c.request(ctx, "GET", "/borns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBorn fetches one record with its babies and appointments.
func (c *Client) GetBorn(ctx context.Context, id int) (models.Born, error) {
	var out models.Born
	if err := c.request(ctx, "GET", "/borns/"+strconv.Itoa(id), nil, &out); err != nil {
		return models.Born{}, err
	}
	return out, nil
}

func (c *Client) CreateBorn(ctx context.Context, b models.Born) error {
	return c.request(ctx, "POST", "/borns", b, nil)
}

func (c *Client) UpdateBorn(ctx context.Context, b models.Born) error {
	return c.request(ctx, "PUT", "/borns/"+strconv.Itoa(b.ID), b, nil)
}

func (c *Client) DeleteBorn(ctx context.Context, id int) error {
	return c.request(ctx, "DELETE", "/borns/"+strconv.Itoa(id), nil, nil)
}

// SetBornStatus performs an approve/reject transition. The upstream expects
// the health-center id alongside the new status; rejectReason only on
// rejection.
func (c *Client) SetBornStatus(ctx context.Context, id int, status string, healthCenterID int, rejectReason string) error {
	in := map[string]any{
		"status":         status,
		"healthCenterId": healthCenterID,
	}
	if rejectReason != "" {
		in["rejectReason"] = rejectReason
	}
	return c.request(ctx, "PUT", "/borns/"+strconv.Itoa(id), in, nil)
}

// Report is the /borns/report/generated envelope.
type Report struct {
	BornRecords []models.ReportRecord `json:"bornRecords"`
	Summary     models.ReportSummary  `json:"summary"`
}

// BornReport fetches the generated report, optionally bounded by an
// inclusive date range (yyyy-mm-dd).
func (c *Client) BornReport(ctx context.Context, fromDate, toDate string) (Report, error) {
	path := "/borns/report/generated"
	if fromDate != "" && toDate != "" {
		path += "?fromDate=" + fromDate + "&toDate=" + toDate
	}
	var out Report
	if err := c.request(ctx, "GET", path, nil, &out); err != nil {
		return Report{}, err
	}
	return out, nil
}
