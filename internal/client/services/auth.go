// Package services contains the account flows of the technai client:
// sign-up, sign-in (password and OAuth), e-mail verification, password
// reset, account deletion and sign-out.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/client/session"
	"github.com/dmitrijs2005/technai/internal/validation"
)

// AuthService defines the account operations for the CLI.
//
// Contract:
//   - Forms are validated before any network call; a failing form returns
//     *validation.Error.
//   - Signin and OAuthCallback store the returned tokens in the session.
//   - DeleteAccount and Signout always leave the local session cleared
//     once the backend has been asked.
//
// All methods must honor context cancellation.
type AuthService interface {
	Signup(ctx context.Context, form validation.SignupForm) (models.AuthResponse, error)
	Signin(ctx context.Context, form validation.SigninForm) error
	OAuthCallback(ctx context.Context, provider, code, state string) error
	VerifyEmail(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, form validation.ResetPasswordForm) error
	ResetPasswordConfirm(ctx context.Context, token string, form validation.ResetPasswordConfirmForm) error
	DeleteAccount(ctx context.Context, password, reason string) error
	Signout(ctx context.Context) error
	CurrentUser() *models.AuthUser
	State() session.State
}

// Session is the part of session.Store the account flows use.
type Session interface {
	Login(ctx context.Context, tokens models.TokenPair, user *models.AuthUser) error
	Logout(ctx context.Context, api session.Logouter) error
	ClearLocal(ctx context.Context) error
	State() session.State
	User() *models.AuthUser
}

type authService struct {
	api       client.AuthAPI
	session   Session
	validator *validation.Validator
}

func NewAuthService(api client.AuthAPI, s Session, v *validation.Validator) AuthService {
	return &authService{api: api, session: s, validator: v}
}

// Signup registers a new account. The backend then mails a verification link.
func (a *authService) Signup(ctx context.Context, form validation.SignupForm) (models.AuthResponse, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.Username = strings.TrimSpace(form.Username)

	if err := a.validator.Validate(form); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := a.api.Signup(ctx, models.SignupRequest{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("signup: %w", err)
	}
	return resp, nil
}

func (a *authService) Signin(ctx context.Context, form validation.SigninForm) error {
	form.Email = strings.TrimSpace(form.Email)

	if err := a.validator.Validate(form); err != nil {
		return err
	}

	tokens, err := a.api.Login(ctx, models.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.session.Login(ctx, tokens, nil)
}

func (a *authService) OAuthCallback(ctx context.Context, provider, code, state string) error {
	if code == "" {
		return ErrMissingAuthCode
	}
	if provider == "" {
		provider = DefaultOAuthProvider
	}

	tokens, err := a.api.OAuthCallback(ctx, provider, code, state)
	if err != nil {
		return fmt.Errorf("oauth callback: %w", err)
	}
	return a.session.Login(ctx, tokens, nil)
}

func (a *authService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidVerificationLink
	}
	if err := a.api.VerifyEmail(ctx, token); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, form validation.ResetPasswordForm) error {
	form.Email = strings.TrimSpace(form.Email)

	if err := a.validator.Validate(form); err != nil {
		return err
	}
	if err := a.api.ResetPassword(ctx, form.Email); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (a *authService) ResetPasswordConfirm(ctx context.Context, token string, form validation.ResetPasswordConfirmForm) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidResetLink
	}
	if err := a.validator.Validate(form); err != nil {
		return err
	}
	if err := a.api.ResetPasswordConfirm(ctx, token, form.NewPassword); err != nil {
		return fmt.Errorf("reset password confirm: %w", err)
	}
	return nil
}

// DeleteAccount withdraws the account and drops the local session.
func (a *authService) DeleteAccount(ctx context.Context, password, reason string) error {
	req := models.WithdrawRequest{Password: password, Reason: strings.TrimSpace(reason)}
	if err := a.api.Withdraw(ctx, req); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return a.session.ClearLocal(ctx)
}

func (a *authService) Signout(ctx context.Context) error {
	return a.session.Logout(ctx, a.api)
}

func (a *authService) CurrentUser() *models.AuthUser {
	return a.session.User()
}

func (a *authService) State() session.State {
	return a.session.State()
}
