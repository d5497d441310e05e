package api

import (
	"context"
	"net/http"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// AuthService handles account authentication and recovery.
//
// Login responds 403 while the account's email is unverified; callers branch
// on that with IsStatus.
type AuthService struct {
	client *Client
}

// Login signs in with email and password. On success the backend sets the
// session cookie, which the jar persists.
func (s *AuthService) Login(ctx context.Context, req entities.LoginRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "login"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Register creates a new account. The account stays unverified until Verify
// succeeds.
func (s *AuthService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "register"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Verify confirms the account with the emailed verification code.
func (s *AuthService) Verify(ctx context.Context, req entities.VerifyRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "verify"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResendVerification requests a fresh verification code.
func (s *AuthService) ResendVerification(ctx context.Context, req entities.EmailRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "resend-verification"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ForgotPassword requests a password reset code.
func (s *AuthService) ForgotPassword(ctx context.Context, req entities.EmailRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "forgot-password"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetPassword sets a new password using the emailed reset code.
func (s *AuthService) ResetPassword(ctx context.Context, req entities.ResetPasswordRequest) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "reset-password"), req, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Logout invalidates the session server-side and drops the persisted cookies.
func (s *AuthService) Logout(ctx context.Context) (*entities.Message, error) {
	var msg entities.Message
	err := s.client.doJSON(ctx, http.MethodPost, s.client.endpoint("auth", "logout"), nil, &msg)
	if err != nil {
		return nil, err
	}

	if err := s.client.jar.Clear(); err != nil {
		return nil, err
	}
	return &msg, nil
}
