// Package stubapi: аутентификация и профиль.
package stubapi

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondValidation(w, r, err.(validator.ValidationErrors))
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.userByEmail(req.Email) != nil {
		respondError(w, r, http.StatusBadRequest, "Email already registered")
		return
	}
	if _, err := s.store.createUser(req.FirstName, req.LastName, req.Email, req.Password, models.RoleUser); err != nil {
		s.log.Error("failed to create user", sl.Err(err))
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondMessage(w, r, http.StatusCreated, "Registration successful")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	u := s.store.authenticate(req.Email, req.Password)
	s.store.mu.Unlock()
	if u == nil {
		respondError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	access, err := s.issueToken(u)
	if err != nil {
		s.log.Error("failed to issue token", sl.Err(err))
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"message": "Login successful",
		"tokens":  map[string]string{"access": access},
		"user": map[string]any{
			"id":         u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"role":       u.Role,
		},
	})
}

// handleProfile отвечает в camelCase — как настоящий бэкенд, у которого
// ответы профиля и статистики исторически не в snake_case.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, r, http.StatusBadRequest, "email is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(email)
	if u == nil {
		respondError(w, r, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"id":              u.ID,
		"firstName":       u.FirstName,
		"lastName":        u.LastName,
		"email":           u.Email,
		"role":            u.Role,
		"createdAt":       u.CreatedAt.Format(time.RFC3339),
		"totalDetections": len(s.store.userDetections(u.ID)),
	})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(req.Email)
	if u == nil {
		respondError(w, r, http.StatusNotFound, "User not found")
		return
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Password != "" {
		hashed, err := s.store.createUserPassword(req.Password)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		u.PasswordHash = hashed
	}
	respondMessage(w, r, http.StatusOK, "Profile updated successfully")
}
