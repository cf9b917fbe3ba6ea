package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, popularity score out of range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state:
// a duplicate unique key (signup on a taken email) or a delete that other
// rows still depend on (city still referenced by stops).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidCredentials is returned by login for both an unknown email and a
// wrong password. A single sentinel with a single message prevents account
// enumeration. Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidOTP is returned by the password-reset flow when no pending code
// exists for the email, the code does not match, or it has expired.
// The caller is never told which of the three happened.
var ErrInvalidOTP = errors.New("invalid or expired code")
