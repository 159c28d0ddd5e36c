package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/technai/internal/client/models"
)

const authBase = "/api/v1/auth"

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error) {
	return callPublic[models.AuthResponse](ctx, c, Request{Method: http.MethodPost, Path: authBase + "/signup", Body: req})
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	return callPublic[models.TokenPair](ctx, c, Request{Method: http.MethodPost, Path: authBase + "/login", Body: req})
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	body := models.RefreshTokenRequest{RefreshToken: refreshToken}
	return callVoid(ctx, c, Request{Method: http.MethodPost, Path: authBase + "/logout", Body: body}, false)
}

func (c *HTTPClient) Withdraw(ctx context.Context, req models.WithdrawRequest) error {
	return callVoid(ctx, c, Request{Method: http.MethodDelete, Path: authBase + "/me", Body: req}, false)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) error {
	q := models.NewQuery().Str("token", token)
	return callVoid(ctx, c, get(authBase+"/verify-email", q), true)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email string) error {
	body := models.ResetPasswordRequest{Email: email}
	return callVoid(ctx, c, Request{Method: http.MethodPost, Path: authBase + "/reset-password", Body: body}, true)
}

func (c *HTTPClient) ResetPasswordConfirm(ctx context.Context, token, newPassword string) error {
	body := models.ResetPasswordConfirmRequest{Token: token, NewPassword: newPassword}
	return callVoid(ctx, c, Request{Method: http.MethodPost, Path: authBase + "/reset-password/confirm", Body: body}, true)
}

func (c *HTTPClient) OAuthCallback(ctx context.Context, provider, code, state string) (models.TokenPair, error) {
	q := models.NewQuery().Str("code", code).Str("state", state)
	return callPublic[models.TokenPair](ctx, c, get(path(authBase+"/oauth2", provider, "callback"), q))
}
