package models

// TokenPair is what login, refresh and the OAuth callback return.
type TokenPair struct {
	AccessToken           string `json:"accessToken"`
	RefreshToken          string `json:"refreshToken"`
	TokenType             string `json:"tokenType,omitempty"`
	ExpiresIn             int64  `json:"expiresIn,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// AuthUser is the display profile kept alongside the tokens.
type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// WithdrawRequest carries the optional confirmation for account deletion.
type WithdrawRequest struct {
	Password string `json:"password,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
