/*
Package user contains data structures and platform operations related to user
identity: registration, login, profile management, and the user directory.

This file defines the Service struct wrapping the /api/user/ endpoints.
*/
package user

import (
	"context"

	"github.com/rs/zerolog"

	"learnhub/internal/api"
	"learnhub/internal/pkg/logx"
)

// Service performs user operations against the platform.
type Service struct {
	api    *api.Client
	logger zerolog.Logger
}

// NewService constructs a user Service on top of the shared platform client.
func NewService(client *api.Client) *Service {
	return &Service{
		api:    client,
		logger: logx.Logger().With().Str("component", "user").Logger(),
	}
}

// loginResponse is the platform reply to a successful credential check.
type loginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// Register creates a new account and returns the created user.
// Registering does not sign the user in; a login call follows.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var created User
	if err := s.api.Post(ctx, "/api/user/register/", input, &created); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("Account registered.")
	return &created, nil
}

// Login exchanges credentials for a bearer token. The token is returned to the
// caller; persisting it and establishing the session is the auth package's job.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var reply loginResponse
	if err := s.api.Post(ctx, "/api/user/login/", payload, &reply); err != nil {
		return "", err
	}
	return reply.AccessToken, nil
}

// Profile fetches the authenticated user's profile. This is also the call that
// validates a persisted token at startup.
func (s *Service) Profile(ctx context.Context) (*User, error) {
	var profile User
	if err := s.api.Get(ctx, "/api/user/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile replaces the authenticated user's profile fields.
func (s *Service) UpdateProfile(ctx context.Context, input ProfileInput) (*User, error) {
	var updated User
	if err := s.api.Put(ctx, "/api/user/profile/", input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ChangePassword rotates the account password. The platform invalidates the old
// token on success and returns a fresh one, which the caller must adopt.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmNewPassword string) (string, error) {
	payload := map[string]string{
		"old_password":         oldPassword,
		"new_password":         newPassword,
		"confirm_new_password": confirmNewPassword,
	}

	var reply loginResponse
	if err := s.api.Post(ctx, "/api/user/change-password/", payload, &reply); err != nil {
		return "", err
	}

	s.logger.Info().Msg("Password changed. Adopting rotated token.")
	return reply.AccessToken, nil
}

// List fetches a page of the user directory.
func (s *Service) List(ctx context.Context, opts api.ListOptions) (*api.Page[User], error) {
	var page api.Page[User]
	if err := s.api.Get(ctx, "/api/user/users/", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SendPasswordReset asks the platform to email a password-reset link.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return s.api.Post(ctx, "/api/user/send-password-reset/", payload, nil)
}

// ResetPassword completes an emailed password reset.
func (s *Service) ResetPassword(ctx context.Context, uid, token, password, confirmPassword string) error {
	payload := map[string]string{
		"uid":              uid,
		"token":            token,
		"password":         password,
		"confirm_password": confirmPassword,
	}
	return s.api.Post(ctx, "/api/user/reset-password/", payload, nil)
}
