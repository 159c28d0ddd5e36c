package services

import (
	"errors"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/validation"
)

// DefaultOAuthProvider is used when the callback names none.
const DefaultOAuthProvider = "google"

var (
	ErrMissingAuthCode         = errors.New("missing authorization code")
	ErrInvalidVerificationLink = errors.New("invalid verification link")
	ErrInvalidResetLink        = errors.New("invalid password reset link")
)

// Fallback texts for failures that carry no backend message.
const (
	MsgGeneric     = "Something went wrong. Please try again later."
	MsgOAuthFailed = "OAuth authentication failed. Please try again."
)

// DisplayMessage returns the text to show the user for err. Backend and
// validation errors carry their own text; anything else shows fallback.
func DisplayMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrMissingAuthCode):
		return "OAuth authentication failed. Missing authorization code."
	case errors.Is(err, ErrInvalidVerificationLink):
		return "Invalid verification link."
	case errors.Is(err, ErrInvalidResetLink):
		return "This password reset link is invalid or has expired."
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}
