package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
)

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	City        string `json:"city"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token,omitempty"`
}

type profileResponse struct {
	User  domain.PublicUser `json:"user"`
	Trips []domain.Trip     `json:"trips"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// Signup handles POST /users/signup.
// It returns 201 with the public user on success, 409 when the email is
// already registered.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	user, err := s.users.Signup(r.Context(), domain.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: user.Public()})
}

// Login handles POST /users/login.
// It returns 200 with the public user and a bearer token, or 401 with a
// generic message when either the email or the password is wrong.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: user.Public(), Token: token})
}

// Logout handles POST /users/logout.
// Tokens are stateless, so there is nothing to revoke server-side; the client
// discards its token. The endpoint exists so the frontend has a single
// logout call to make.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// GetProfile handles GET /users/me/{id}.
// It returns the public user fields plus their trips, newest first.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}

	user, trips, err := s.users.Profile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{User: user, Trips: trips})
}

// ForgotPasswordOTP handles POST /users/forgot-password-otp.
// It always acknowledges with the same message so callers cannot probe which
// emails have accounts.
func (s *Server) ForgotPasswordOTP(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	if err := s.users.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if the email is registered, a reset code has been sent",
	})
}

// ResetPasswordOTP handles POST /users/reset-password-otp.
// A wrong, expired, or already-used code returns 400.
func (s *Server) ResetPasswordOTP(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
