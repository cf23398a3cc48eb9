package service

import (
	"context"
	"errors"
	"testing"

	"sagradago/pkg/client"
	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/logger"
)

type mockInviter struct {
	err       error
	lastEmail string
	lastURL   string
	calls     int
}

func (m *mockInviter) InviteUserByEmail(_ context.Context, email, redirectTo string) (*client.InvitedUser, error) {
	m.calls++
	m.lastEmail = email
	m.lastURL = redirectTo
	if m.err != nil {
		return nil, m.err
	}
	return &client.InvitedUser{ID: "user-1", Email: email}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		InviteRedirectURL: "https://sagradago.example/set-password",
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func TestInviteUser(t *testing.T) {
	inviter := &mockInviter{}
	svc := NewAdminService(inviter, testConfig())

	result, err := svc.InviteUser(context.Background(), &InviteUserRequest{Email: "  new.staff@sagradago.example  "})
	if err != nil {
		t.Fatalf("InviteUser returned error: %v", err)
	}
	if inviter.lastEmail != "new.staff@sagradago.example" {
		t.Errorf("email sent = %q, want trimmed address", inviter.lastEmail)
	}
	if inviter.lastURL != "https://sagradago.example/set-password" {
		t.Errorf("redirect = %q, want configured URL", inviter.lastURL)
	}
	want := "User has been invited to join SagradaGo. They are sent an invite link to set their password before accessing the system."
	if result.Message != want {
		t.Errorf("message = %q, want %q", result.Message, want)
	}
	if result.User == nil || result.User.Email != "new.staff@sagradago.example" {
		t.Errorf("result user = %+v, want invited user echoed back", result.User)
	}
}

func TestInviteUserRejectsBadEmail(t *testing.T) {
	inviter := &mockInviter{}
	svc := NewAdminService(inviter, testConfig())

	for _, email := range []string{"", "   ", "not-an-email", "@no-local-part"} {
		_, err := svc.InviteUser(context.Background(), &InviteUserRequest{Email: email})
		if err == nil {
			t.Errorf("email %q: expected error", email)
			continue
		}
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeValidation {
			t.Errorf("email %q: code = %s, want %s", email, appErr.Code, apperrors.CodeValidation)
		}
	}
	if inviter.calls != 0 {
		t.Errorf("inviter called %d times for invalid emails, want 0", inviter.calls)
	}
}

func TestInviteUserWrapsPlatformFailure(t *testing.T) {
	inviter := &mockInviter{err: errors.New("auth platform returned status 429")}
	svc := NewAdminService(inviter, testConfig())

	_, err := svc.InviteUser(context.Background(), &InviteUserRequest{Email: "new.staff@sagradago.example"})
	if err == nil {
		t.Fatal("expected error when the platform call fails")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInternal)
	}
	if appErr.Message != "Failed to invite user. Please try again." {
		t.Errorf("message = %q", appErr.Message)
	}
}
