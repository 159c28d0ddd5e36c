package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/technai/internal/client/services"
	"github.com/dmitrijs2005/technai/internal/validation"
)

// signup collects the registration form. Validation failures are reported
// before anything is sent.
func (a *App) signup(ctx context.Context, _ []string) error {
	var form validation.SignupForm
	var err error

	if form.Email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if form.Username, err = GetSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if form.Password, err = GetPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if form.ConfirmPassword, err = GetPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	resp, err := a.auth.Signup(ctx, form)
	if err != nil {
		return err
	}

	if resp.Message != "" {
		fmt.Fprintln(a.out, resp.Message)
	}
	fmt.Fprintf(a.out, "Account created. Check %s for the verification link.\n", resp.Email)
	return nil
}

func (a *App) signin(ctx context.Context, _ []string) error {
	var form validation.SigninForm
	var err error

	if form.Email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if form.Password, err = GetPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}

	if err := a.auth.Signin(ctx, form); err != nil {
		return err
	}

	a.log.Info(ctx, "signed in")
	fmt.Fprintln(a.out, "Welcome,", a.displayName()+"!")
	return nil
}

// oauth completes a provider redirect: oauth <provider> <code> [state].
func (a *App) oauth(ctx context.Context, args []string) error {
	provider, code, st := args[0], args[1], ""
	if len(args) > 2 {
		st = args[2]
	}

	if err := a.auth.OAuthCallback(ctx, provider, code, st); err != nil {
		fmt.Fprintln(a.out, services.DisplayMessage(err, services.MsgOAuthFailed))
		fmt.Fprintln(a.out, redirectNotice)
		return nil
	}

	fmt.Fprintln(a.out, "Welcome,", a.displayName()+"!")
	return nil
}

func (a *App) verify(ctx context.Context, args []string) error {
	if err := a.auth.VerifyEmail(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Email verified. You can sign in now.")
	return nil
}

func (a *App) reset(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ResetPassword(ctx, validation.ResetPasswordForm{Email: email}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "If the account exists, a password reset link has been sent.")
	return nil
}

func (a *App) resetConfirm(ctx context.Context, args []string) error {
	var form validation.ResetPasswordConfirmForm
	var err error

	if form.NewPassword, err = GetPassword(a.reader, "Enter new password", a.out); err != nil {
		return err
	}
	if form.ConfirmPassword, err = GetPassword(a.reader, "Confirm new password", a.out); err != nil {
		return err
	}

	if err := a.auth.ResetPasswordConfirm(ctx, args[0], form); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed. You can sign in now.")
	return nil
}

func (a *App) signout(ctx context.Context, _ []string) error {
	a.transcript.NewChat()
	if err := a.auth.Signout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) deleteAccount(ctx context.Context, _ []string) error {
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	reason, err := GetSimpleText(a.reader, "Reason (optional)", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Delete your account? This cannot be undone.", a.out) {
		return errCancelled
	}

	if err := a.auth.DeleteAccount(ctx, password, reason); err != nil {
		return err
	}
	a.transcript.NewChat()
	fmt.Fprintln(a.out, "Your account has been deleted.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	u := a.auth.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", a.displayName(), u.Email)
	return nil
}

func (a *App) displayName() string {
	u := a.auth.CurrentUser()
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.Username); name != "" {
		return name
	}
	return u.Email
}
