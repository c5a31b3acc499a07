package auth

import (
	"errors"

	"brightevents-backend/internal/apperr"
)

var (
	ErrMissingToken       = apperr.New(apperr.CodeUnauthenticated, "Please provide an access token")
	ErrExpiredToken       = apperr.New(apperr.CodeUnauthenticated, "Expired token. Please login to get a new token")
	ErrInvalidToken       = apperr.New(apperr.CodeUnauthenticated, "Invalid token. Please register or login")
	ErrRevokedToken       = apperr.New(apperr.CodeUnauthenticated, "Token has been revoked. Please login again")
	ErrUnknownUser        = apperr.New(apperr.CodeUnauthenticated, "User not found. Please register or login")
	ErrInvalidCredentials = apperr.New(apperr.CodeUnauthenticated, "Invalid email or password, Please try again")
	ErrDuplicateIdentity  = apperr.New(apperr.CodeDuplicateIdentity, "User already exists. Please login")
)

// FailureReason labels an Access Guard rejection for metrics and logs.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrExpiredToken):
		return "expired"
	case errors.Is(err, ErrInvalidToken):
		return "invalid"
	case errors.Is(err, ErrRevokedToken):
		return "revoked"
	case errors.Is(err, ErrUnknownUser):
		return "unknown_user"
	default:
		return "error"
	}
}
