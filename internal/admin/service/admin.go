package service

import (
	"context"

	"sagradago/pkg/client"
	"sagradago/pkg/config"
	apperrors "sagradago/pkg/errors"
	"sagradago/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

const inviteSuccessMessage = "User has been invited to join SagradaGo. " +
	"They are sent an invite link to set their password before accessing the system."

// Inviter is the slice of the auth admin client the service needs.
type Inviter interface {
	InviteUserByEmail(ctx context.Context, email, redirectTo string) (*client.InvitedUser, error)
}

type InviteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type InviteUserResult struct {
	Message string              `json:"message"`
	Details string              `json:"details"`
	User    *client.InvitedUser `json:"user,omitempty"`
}

type AdminService interface {
	InviteUser(ctx context.Context, req *InviteUserRequest) (*InviteUserResult, error)
}

type adminService struct {
	inviter  Inviter
	validate *validator.Validate
	cfg      *config.Config
}

func NewAdminService(inviter Inviter, cfg *config.Config) AdminService {
	return &adminService{
		inviter:  inviter,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// InviteUser asks the auth platform to email an invite link. The invitee
// sets their own password, so no credential ever passes through here.
func (s *adminService) InviteUser(ctx context.Context, req *InviteUserRequest) (*InviteUserResult, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Email is required")
	}

	req.Email = sanitizer.TrimAndNormalize(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("Please enter a valid email address.", nil)
	}

	user, err := s.inviter.InviteUserByEmail(ctx, req.Email, s.cfg.InviteRedirectURL)
	if err != nil {
		s.cfg.Log.Error("user invite failed", "email", req.Email, "error", err)
		return nil, apperrors.Internal("Failed to invite user. Please try again.", err)
	}

	return &InviteUserResult{
		Message: inviteSuccessMessage,
		Details: "User has been invited to join SagradaGo",
		User:    user,
	}, nil
}
