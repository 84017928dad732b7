package handlers

import (
	"net/http"
	"strings"

	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
	"github.com/samber/lo"
)

type statLine struct {
	Label string
	Value int
}

// GET /
func (e *Env) Dashboard() http.HandlerFunc {
	view := e.page("dashboard.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)

		var stats models.Statistics
		var flash *Flash
		stats, err := e.client(r).Statistics(r.Context())
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}
		if flash == nil {
			flash = MakeFlash(r)
		}

		_ = view.ExecuteTemplate(w, "pages/dashboard", map[string]any{
			"Title":      "Dashboard",
			"Session":    s,
			"Flash":      flash,
			"Stats":      stats,
			"UserRoles":  roleLines(stats.Users),
			"ApptStatus": statusLines(stats.AppointmentsByStatus),
		})
	}
}

func roleLines(byRole map[string]int) []statLine {
	lines := lo.MapToSlice(byRole, func(role string, n int) statLine {
		return statLine{Label: formatRoleName(role), Value: n}
	})
	return sortLines(lines)
}

func statusLines(byStatus map[string]int) []statLine {
	lines := lo.MapToSlice(byStatus, func(status string, n int) statLine {
		return statLine{Label: status, Value: n}
	})
	return sortLines(lines)
}

func sortLines(lines []statLine) []statLine {
	// Map iteration order is random; keep the cards stable between loads.
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0 && lines[j].Label < lines[j-1].Label; j-- {
			lines[j], lines[j-1] = lines[j-1], lines[j]
		}
	}
	return lines
}

// formatRoleName turns role_name_like_this into Role Name Like This.
func formatRoleName(role string) string {
	words := strings.Split(role, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
