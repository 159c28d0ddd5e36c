package validation

type SignupForm struct {
	Email           string `json:"email" validate:"emailaddr"`
	Username        string `json:"username" validate:"username"`
	Password        string `json:"password" validate:"password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

type SigninForm struct {
	Email    string `json:"email" validate:"emailaddr"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordForm struct {
	Email string `json:"email" validate:"emailaddr"`
}

type ResetPasswordConfirmForm struct {
	NewPassword     string `json:"newPassword" validate:"password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}
