package handlers

import (
	"testing"

	"github.com/cedrotech1/digitalretransfer/internal/api"
	"github.com/cedrotech1/digitalretransfer/internal/models"
)

func TestReportRowFlattening(t *testing.T) {
	rec := models.ReportRecord{
		DateOfBirth:  "2026-08-01",
		HealthCenter: "Remera HC",
		MotherName:   "Alice U",
		DeliveryType: "normal",
		Leave:        "yes",
		Babies: []models.ReportBaby{
			{BabyName: "Aline", Gender: "female", BirthWeight: 3.2, Medications: []string{"Vitamin K", "BCG"}},
			{BabyName: "Eric", Gender: "male", BirthWeight: 3.0},
		},
		Appointments: []models.ReportAppointed{
			{AppointmentDate: "2026-09-01", Feedback: []models.AppointmentFeedback{{Status: "Healthy", Weight: 3.8}}},
		},
	}

	row := reportRow(rec)
	if row[5] != "Aline" || row[6] != "female" {
		t.Errorf("first baby not flattened: %v", row)
	}
	if row[8] != "Vitamin K, BCG" {
		t.Errorf("medications = %v, want joined list", row[8])
	}
	if row[9] != "2026-09-01" || row[10] != "Healthy" {
		t.Errorf("appointment columns = %v %v", row[9], row[10])
	}
}

func TestReportRowEmptyRecord(t *testing.T) {
	row := reportRow(models.ReportRecord{DateOfBirth: "2026-08-01", MotherName: "Beth N"})
	for _, col := range []int{5, 6, 7, 8, 9, 10} {
		if row[col] != "N/A" {
			t.Errorf("column %d = %v, want N/A", col, row[col])
		}
	}
}

func TestReportWorkbookRowCount(t *testing.T) {
	rep := api.Report{
		BornRecords: []models.ReportRecord{
			{DateOfBirth: "2026-08-01", MotherName: "A"},
			{DateOfBirth: "2026-08-02", MotherName: "B"},
		},
	}
	f, err := reportWorkbook(rep)
	if err != nil {
		t.Fatalf("reportWorkbook: %v", err)
	}
	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 { // header + 2 records
		t.Errorf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Date of Birth" {
		t.Errorf("header row = %v", rows[0])
	}
}
