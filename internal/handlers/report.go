package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cedrotech1/digitalretransfer/internal/api"
	"github.com/cedrotech1/digitalretransfer/internal/listview"
	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
)

// GET /report
func (e *Env) Report() http.HandlerFunc {
	view := e.page("report.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		q := r.URL.Query()
		from, to := q.Get("from"), q.Get("to")

		rep, err := e.client(r).BornReport(r.Context(), from, to)
		flash := MakeFlash(r)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}

		pageRows, pager := listview.Paginate(rep.BornRecords, atoi(q.Get("page")), listview.DefaultPerPage)
		pager = pager.WithQuery(q)

		_ = view.ExecuteTemplate(w, "pages/report", map[string]any{
			"Title":   "Born Records Report",
			"Session": s,
			"Flash":   flash,
			"Rows":    pageRows,
			"Pager":   pager,
			"Summary": rep.Summary,
			"From":    from,
			"To":      to,
		})
	}
}

// GET /report/export — streams the current date-range's records as an
// Excel workbook named with today's date.
func (e *Env) ReportExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rep, err := e.client(r).BornReport(r.Context(), q.Get("from"), q.Get("to"))
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/report", err), http.StatusSeeOther)
			return
		}

		f, err := reportWorkbook(rep)
		if err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		name := "born_records_" + time.Now().Format("2006-01-02") + ".xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		if err := f.Write(w); err != nil {
			log.Printf("report export: %v", err)
		}
	}
}

const reportSheet = "Born Records"

var reportHeader = []string{
	"Date of Birth", "Health Center", "Mother Name", "Delivery Type", "Leave",
	"Baby Name", "Gender", "Birth Weight", "Medications", "Last Appointment", "Status",
}

// reportWorkbook renders one row per record, flattening the first baby and
// latest appointment the way the report table shows them.
func reportWorkbook(rep api.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return nil, err
	}
	for i, rec := range rep.BornRecords {
		row := reportRow(rec)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func reportRow(rec models.ReportRecord) []any {
	babyName, gender, meds := "N/A", "N/A", "N/A"
	var weight any = "N/A"
	if len(rec.Babies) > 0 {
		b := rec.Babies[0]
		babyName, gender = b.BabyName, b.Gender
		weight = b.BirthWeight
		if len(b.Medications) > 0 {
			meds = strings.Join(b.Medications, ", ")
		}
	}

	lastAppt, fbStatus := "N/A", "N/A"
	if len(rec.Appointments) > 0 {
		a := rec.Appointments[0]
		lastAppt = a.AppointmentDate
		if len(a.Feedback) > 0 {
			fbStatus = a.Feedback[0].Status
		}
	}

	return []any{
		rec.DateOfBirth, rec.HealthCenter, rec.MotherName, rec.DeliveryType,
		rec.Leave, babyName, gender, weight, meds, lastAppt, fbStatus,
	}
}
