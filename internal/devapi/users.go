package devapi

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// GET /users — this endpoint alone wraps its list in {allUsers}.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	var users []User
	if err := s.db.Order("lastname, firstname").Find(&users).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"allUsers": users})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request) {
	var totalUsers, totalBorns, totalBabies, totalCenters, totalAppts int64
	s.db.Model(&User{}).Count(&totalUsers)
	s.db.Model(&Born{}).Count(&totalBorns)
	s.db.Model(&Baby{}).Count(&totalBabies)
	s.db.Model(&HealthCenter{}).Count(&totalCenters)
	s.db.Model(&Appointment{}).Count(&totalAppts)

	usersByRole := map[string]int{}
	rows, err := s.db.Model(&User{}).Select("role, count(*) as n").Group("role").Rows()
	if err == nil {
		for rows.Next() {
			var role string
			var n int
			if err := rows.Scan(&role, &n); err == nil {
				usersByRole[role] = n
			}
		}
		rows.Close()
	}

	apptsByStatus := map[string]int{}
	rows, err = s.db.Model(&Appointment{}).Select("status, count(*) as n").Group("status").Rows()
	if err == nil {
		for rows.Next() {
			var status string
			var n int
			if err := rows.Scan(&status, &n); err == nil {
				apptsByStatus[status] = n
			}
		}
		rows.Close()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalUsers":           totalUsers,
		"users":                usersByRole,
		"totalBorns":           totalBorns,
		"totalBabies":          totalBabies,
		"totalHealthCenters":   totalCenters,
		"totalAppointments":    totalAppts,
		"appointmentsByStatus": apptsByStatus,
	})
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		User
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Email == "" || in.Firstname == "" {
		writeError(w, http.StatusBadRequest, "firstname and email are required")
		return
	}

	var existing int64
	s.db.Model(&User{}).Where("email = ?", in.Email).Count(&existing)
	if existing > 0 {
		writeError(w, http.StatusConflict, "a user with this email already exists")
		return
	}

	// New accounts start active with a default password until first reset.
	password := in.Password
	if password == "" {
		password = "Welcome@123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash error")
		return
	}

	u := in.User
	u.ID = 0
	u.Password = string(hash)
	if u.Status == "" {
		u.Status = "active"
	}
	if err := s.db.Create(&u).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var in struct {
		Firstname      *string `json:"firstname"`
		Lastname       *string `json:"lastname"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		Gender         *string `json:"gender"`
		Role           *string `json:"role"`
		HealthCenterID *int    `json:"healthCenterId"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Firstname != nil {
		u.Firstname = *in.Firstname
	}
	if in.Lastname != nil {
		u.Lastname = *in.Lastname
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Gender != nil {
		u.Gender = *in.Gender
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.HealthCenterID != nil {
		u.HealthCenterID = *in.HealthCenterID
	}

	if err := s.db.Save(&u).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) setUserStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(r, "id"))
		var u User
		if err := s.db.First(&u, id).Error; err != nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		if u.ID == currentUser(r).ID {
			writeError(w, http.StatusBadRequest, "cannot change your own account status")
			return
		}
		u.Status = status
		if err := s.db.Save(&u).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "db error")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var in struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.NewPassword == "" || in.NewPassword != in.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.OldPassword)); err != nil {
		writeError(w, http.StatusBadRequest, "old password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash error")
		return
	}
	u.Password = string(hash)
	if err := s.db.Save(&u).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	if id == currentUser(r).ID {
		writeError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err := s.db.Delete(&User{}, id).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	s.db.Where("user_id = ?", id).Delete(&Notification{})
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// The password-reset trio. There is no outbound mail here; the code is
// logged so a developer can read it off the console.

func (s *Server) requestResetCode(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var u User
	if err := s.db.Where("email = ?", strings.TrimSpace(in.Email)).First(&u).Error; err != nil {
		writeError(w, http.StatusNotFound, "no account with this email")
		return
	}

	code := fmt.Sprintf("%05d", rand.Intn(100000))
	u.ResetCode = code
	if err := s.db.Save(&u).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	log.Printf("reset code for %s: %s", u.Email, code)
	writeJSON(w, http.StatusOK, map[string]string{"message": "verification code sent"})
}

func (s *Server) verifyResetCode(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	var in struct {
		Code string `json:"code"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var u User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		writeError(w, http.StatusNotFound, "no account with this email")
		return
	}
	if u.ResetCode == "" || u.ResetCode != in.Code {
		writeError(w, http.StatusBadRequest, "invalid verification code")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "code verified"})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	var in struct {
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	var u User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		writeError(w, http.StatusNotFound, "no account with this email")
		return
	}
	if u.ResetCode == "" {
		writeError(w, http.StatusBadRequest, "no verification code was requested")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash error")
		return
	}
	u.Password = string(hash)
	u.ResetCode = ""
	if err := s.db.Save(&u).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset"})
}
