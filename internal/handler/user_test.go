package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globe-trotter/backend/internal/domain"
)

func TestSignup(t *testing.T) {
	users := &mockUserServicer{
		signup: func(_ context.Context, input domain.SignupInput) (domain.User, error) {
			assert.Equal(t, "Ada Lovelace", input.Name)
			assert.Equal(t, "ada@example.com", input.Email)
			return domain.User{
				ID:        uuid.New(),
				Name:      input.Name,
				Email:     input.Email,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/signup", "", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "correct horse",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User  domain.PublicUser `json:"user"`
		Token string            `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Empty(t, resp.Token, "signup does not log the user in")
	assert.NotContains(t, rec.Body.String(), "PasswordHash")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := &mockUserServicer{
		signup: func(context.Context, domain.SignupInput) (domain.User, error) {
			return domain.User{}, domain.ErrConflict
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/signup", "", map[string]string{
		"email": "taken@example.com", "password": "whatever1",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeError(t, rec).Error.Code)
}

func TestSignup_MalformedBody(t *testing.T) {
	rec := doJSON(t, newTestRouter(deps{users: &mockUserServicer{}}), http.MethodPost, "/users/signup", "", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	users := &mockUserServicer{
		login: func(_ context.Context, email, password string) (domain.User, string, error) {
			assert.Equal(t, "ada@example.com", email)
			assert.Equal(t, "correct horse", password)
			return domain.User{ID: userID, Email: email}, "jwt-token", nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/login", "", map[string]string{
		"email": "ada@example.com", "password": "correct horse",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  domain.PublicUser `json:"user"`
		Token string            `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, "jwt-token", resp.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	users := &mockUserServicer{
		login: func(context.Context, string, string) (domain.User, string, error) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeError(t, rec)
	assert.Equal(t, "invalid_credentials", env.Error.Code)
	assert.Equal(t, "invalid email or password", env.Error.Message)
}

func TestLogout(t *testing.T) {
	rec := doJSON(t, newTestRouter(deps{}), http.MethodPost, "/users/logout", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"logged out"}`, rec.Body.String())
}

func TestGetProfile(t *testing.T) {
	userID := uuid.New()
	users := &mockUserServicer{
		profile: func(_ context.Context, id uuid.UUID) (domain.PublicUser, []domain.Trip, error) {
			assert.Equal(t, userID, id)
			return domain.PublicUser{ID: id, Email: "ada@example.com"},
				[]domain.Trip{{ID: uuid.New(), Title: "Alps"}}, nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodGet, "/users/me/"+userID.String(), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  domain.PublicUser `json:"user"`
		Trips []domain.Trip     `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.User.Email)
	require.Len(t, resp.Trips, 1)
}

func TestGetProfile_BadID(t *testing.T) {
	rec := doJSON(t, newTestRouter(deps{users: &mockUserServicer{}}), http.MethodGet, "/users/me/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgotPasswordOTP_GenericAcknowledgement(t *testing.T) {
	users := &mockUserServicer{
		requestPasswordReset: func(_ context.Context, email string) error {
			assert.Equal(t, "ghost@example.com", email)
			return nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/forgot-password-otp", "",
		map[string]string{"email": "ghost@example.com"})

	// Same 200 + message whether or not the account exists.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "if the email is registered")
}

func TestResetPasswordOTP(t *testing.T) {
	users := &mockUserServicer{
		resetPassword: func(_ context.Context, email, code, newPassword string) error {
			assert.Equal(t, "ada@example.com", email)
			assert.Equal(t, "123456", code)
			assert.Equal(t, "new password", newPassword)
			return nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/reset-password-otp", "", map[string]string{
		"email": "ada@example.com", "otp": "123456", "newPassword": "new password",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"password updated"}`, rec.Body.String())
}

func TestResetPasswordOTP_InvalidCode(t *testing.T) {
	users := &mockUserServicer{
		resetPassword: func(context.Context, string, string, string) error {
			return domain.ErrInvalidOTP
		},
	}
	rec := doJSON(t, newTestRouter(deps{users: users}), http.MethodPost, "/users/reset-password-otp", "", map[string]string{
		"email": "ada@example.com", "otp": "000000", "newPassword": "new password",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_otp", decodeError(t, rec).Error.Code)
}
