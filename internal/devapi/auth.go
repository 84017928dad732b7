package devapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey int

const userKey ctxKey = 0

// issueToken signs a 24h HS256 token for the user.
func (s *Server) issueToken(u User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = u.ID
	claims["email"] = u.Email
	claims["role"] = u.Role
	claims["jti"] = uuid.NewString()
	claims["exp"] = time.Now().Add(24 * time.Hour).Unix()
	return token.SignedString([]byte(s.jwtSecret))
}

// requireAuth guards the data routes: a missing or invalid bearer token is
// a 401 with the production API's message shape.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		sub, _ := claims["sub"].(float64)

		var u User
		if err := s.db.First(&u, int(sub)).Error; err != nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		if u.Status != "active" {
			writeError(w, http.StatusUnauthorized, "account is deactivated")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// currentUser returns the authenticated user stored by requireAuth.
func currentUser(r *http.Request) User {
	u, _ := r.Context().Value(userKey).(User)
	return u
}

// POST /auth/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var u User
	if err := s.db.Where("email = ?", strings.TrimSpace(in.Email)).First(&u).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if u.Status != "active" {
		writeError(w, http.StatusUnauthorized, "account is deactivated")
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
}
