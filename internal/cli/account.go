/*
Package cli implements the terminal commands of the LearnHub client.

This file holds the account commands: registration, sign-in/out, profile,
password change, and the user directory.
*/
package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"learnhub/internal/api"
	"learnhub/internal/app/user"
	"learnhub/internal/auth"
)

// tokenExpiryWarnWindow is how close to expiry whoami starts warning.
const tokenExpiryWarnWindow = 30 * time.Minute

func (a *App) registerCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "sign-in email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		fs.Usage()
		return ErrHelp
	}

	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm password")
	if err != nil {
		return err
	}

	created, err := a.Users.Register(ctx, user.RegisterInput{
		Name:            *name,
		Email:           *email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Account created for %s. Sign in with: learnhub login -email %s\n", created.Name, created.Email)
	return nil
}

func (a *App) loginCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "sign-in email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		fs.Usage()
		return ErrHelp
	}

	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	token, err := a.Users.Login(ctx, *email, password)
	if err != nil {
		return err
	}

	if !a.Session.Login(ctx, token) {
		fmt.Fprintln(a.Stdout, "Sign-in failed: the platform rejected the issued token.")
		return nil
	}

	fmt.Fprintf(a.Stdout, "Signed in as %s.\n", a.Session.CurrentUser().Name)
	return nil
}

func (a *App) logoutCmd() error {
	a.Session.Logout()
	fmt.Fprintln(a.Stdout, "Signed out.")
	return nil
}

func (a *App) whoamiCmd() error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	current := a.Session.CurrentUser()
	fmt.Fprintf(a.Stdout, "%s <%s> (id %d)\n", current.Name, current.Email, current.ID)
	if current.Bio != "" {
		fmt.Fprintf(a.Stdout, "bio: %s\n", current.Bio)
	}
	fmt.Fprintf(a.Stdout, "courses created: %d, average rating: %.1f\n", current.TotalCourses, current.AvgRating)

	if expiry, err := auth.TokenExpiry(a.Session.Token()); err == nil {
		if remaining := time.Until(expiry); remaining < tokenExpiryWarnWindow {
			fmt.Fprintf(a.Stdout, "note: session token expires in %s\n", remaining.Round(time.Minute))
		}
	}
	return nil
}

func (a *App) updateProfileCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	bio := fs.String("bio", "", "profile description")
	pic := fs.String("pic", "", "profile picture URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	input := user.ProfileInput{Name: *name, Bio: *bio, ProfilePic: *pic}
	if input.Name == "" {
		input.Name = a.Session.CurrentUser().Name
	}

	updated, err := a.Users.UpdateProfile(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Profile updated for %s.\n", updated.Name)
	return nil
}

func (a *App) passwdCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	oldPassword, err := a.promptPassword("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm new password")
	if err != nil {
		return err
	}

	// The platform rotates the token on success; adopt it or the session dies
	// on the next request.
	token, err := a.Users.ChangePassword(ctx, oldPassword, newPassword, confirm)
	if err != nil {
		return err
	}

	if !a.Session.Login(ctx, token) {
		fmt.Fprintln(a.Stdout, "Password changed, but the rotated token was rejected. Please sign in again.")
		return nil
	}

	fmt.Fprintln(a.Stdout, "Password changed.")
	return nil
}

func (a *App) usersCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	listed, err := a.Users.List(ctx, api.ListOptions{Page: *page})
	if err != nil {
		return err
	}

	if len(listed.Results) == 0 {
		fmt.Fprintln(a.Stdout, "No users found.")
		return nil
	}

	table := a.newTable()
	fmt.Fprintln(table, "ID\tNAME\tEMAIL\tCOURSES\tRATING")
	for _, u := range listed.Results {
		fmt.Fprintf(table, "%d\t%s\t%s\t%d\t%.1f\n", u.ID, u.Name, u.Email, u.TotalCourses, u.AvgRating)
	}
	table.Flush()

	fmt.Fprintf(a.Stdout, "%d of %d users (page %d)\n", len(listed.Results), listed.Count, *page)
	return nil
}

func (a *App) forgotPasswordCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ContinueOnError)
	email := fs.String("email", "", "sign-in email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		fs.Usage()
		return ErrHelp
	}

	if err := a.Users.SendPasswordReset(ctx, *email); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "If an account exists for %s, a reset link has been emailed.\n", *email)
	return nil
}

func (a *App) resetPasswordCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	uid := fs.String("uid", "", "user identifier from the reset link")
	token := fs.String("token", "", "reset token from the reset link")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *uid == "" || *token == "" {
		fs.Usage()
		return ErrHelp
	}

	password, err := a.promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm new password")
	if err != nil {
		return err
	}

	if err := a.Users.ResetPassword(ctx, *uid, *token, password, confirm); err != nil {
		return err
	}

	fmt.Fprintln(a.Stdout, "Password reset. Sign in with: learnhub login")
	return nil
}
