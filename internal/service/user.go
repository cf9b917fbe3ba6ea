// Package service contains the business logic for the GlobeTrotter API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/mail"
	"github.com/globe-trotter/backend/internal/otp"
	"github.com/globe-trotter/backend/internal/repo"
)

// otpTTL is how long a password-reset code stays valid.
const otpTTL = 10 * time.Minute

var (
	// emailRx accepts the standard local@domain shape: no whitespace or extra
	// @ signs, at least one dot in the domain.
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// phoneRx accepts 8-15 digits optionally prefixed with +, allowing spaces
	// and hyphens as separators.
	phoneRx = regexp.MustCompile(`^\+?[\d\s-]{8,15}$`)
)

// TokenIssuer issues signed bearer credentials for a user id.
// Satisfied by *auth.Issuer; an interface so tests can stub it.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// UserService implements signup, login, profile lookup, and the OTP-based
// password recovery flow.
type UserService struct {
	users  repo.UserRepo
	trips  repo.TripRepo
	otps   otp.Store
	mailer mail.Sender
	tokens TokenIssuer
}

// NewUserService constructs a UserService with its dependencies.
func NewUserService(users repo.UserRepo, trips repo.TripRepo, otps otp.Store, mailer mail.Sender, tokens TokenIssuer) *UserService {
	return &UserService{users: users, trips: trips, otps: otps, mailer: mailer, tokens: tokens}
}

// Signup validates and registers a new account. The password is stored only
// as a bcrypt hash; the returned user never carries it.
// Validation runs before any persistence access. Returns domain.ErrConflict
// if the normalized email is already registered.
func (s *UserService) Signup(ctx context.Context, input domain.SignupInput) (domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if !emailRx.MatchString(input.Email) {
		return domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(input.Password) < 8 {
		return domain.User{}, fmt.Errorf("%w: password must be at least 8 characters long", domain.ErrValidation)
	}
	if input.PhoneNumber != "" && !phoneRx.MatchString(input.PhoneNumber) {
		return domain.User{}, fmt.Errorf("%w: invalid phone number format", domain.ErrValidation)
	}

	email := strings.ToLower(input.Email)

	// Pre-check for a friendlier error; the unique index still backstops
	// a concurrent signup race inside users.Create.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("service.UserService.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Signup: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		City:         input.City,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Signup: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues a signed 7-day bearer token.
// An unknown email and a wrong password both return
// domain.ErrInvalidCredentials — deliberately indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	if email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if !emailRx.MatchString(email) {
		return domain.User{}, "", fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return user, token, nil
}

// Profile returns the public fields for a user plus their trips newest-first
// (no nested stops). Returns domain.ErrNotFound if the user does not exist.
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (domain.PublicUser, []domain.Trip, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, nil, fmt.Errorf("service.UserService.Profile: %w", err)
	}

	trips, err := s.trips.ListByUser(ctx, id, domain.TripListParams{SortBy: "createdAt"})
	if err != nil {
		return domain.PublicUser{}, nil, fmt.Errorf("service.UserService.Profile: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	return user.Public(), trips, nil
}

// RequestPasswordReset starts the OTP flow. It succeeds with the same generic
// outcome whether or not the email is registered; for unknown emails nothing
// is stored and nothing is sent.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	normalized := strings.ToLower(email)
	if _, err := s.users.GetByEmail(ctx, normalized); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil // generic acknowledgement, no enumeration
		}
		return fmt.Errorf("service.UserService.RequestPasswordReset: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("service.UserService.RequestPasswordReset: %w", err)
	}

	// Put overwrites any prior pending code for this email.
	if err := s.otps.Put(ctx, normalized, code, otpTTL); err != nil {
		return fmt.Errorf("service.UserService.RequestPasswordReset: %w", err)
	}
	if err := s.mailer.SendPasswordResetCode(ctx, normalized, code); err != nil {
		return fmt.Errorf("service.UserService.RequestPasswordReset: %w", err)
	}
	return nil
}

// ResetPassword completes the OTP flow. The code is one-time use: a
// successful reset consumes it, and a second attempt with the same code
// fails with domain.ErrInvalidOTP.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, otp, and new password are required", domain.ErrValidation)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", domain.ErrValidation)
	}

	normalized := strings.ToLower(email)

	ok, err := s.otps.Consume(ctx, normalized, code)
	if err != nil {
		return fmt.Errorf("service.UserService.ResetPassword: %w", err)
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Code consumed but account gone — treat as an invalid code
			// rather than confirming the account ever existed.
			return domain.ErrInvalidOTP
		}
		return fmt.Errorf("service.UserService.ResetPassword: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.UserService.ResetPassword: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("service.UserService.ResetPassword: %w", err)
	}
	return nil
}

// generateOTP returns a 6-digit numeric code from crypto/rand,
// zero-padded so "042187" is as likely as "942187".
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
