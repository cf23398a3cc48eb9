package client

import (
	"context"
	"fmt"
	"net/http"
)

// AuthAdminClient wraps the hosted auth platform's admin invite API.
// The service-role key must never leave the server side.
type AuthAdminClient struct {
	http       *HttpClient
	serviceKey string
}

type InviteRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type InvitedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func NewAuthAdminClient(baseURL, serviceKey string) *AuthAdminClient {
	return &AuthAdminClient{
		http:       NewHttpClient(baseURL),
		serviceKey: serviceKey,
	}
}

// InviteUserByEmail asks the auth platform to send an invite link; the
// invitee sets their own password before first sign-in.
func (c *AuthAdminClient) InviteUserByEmail(ctx context.Context, email, redirectTo string) (*InvitedUser, error) {
	headers := map[string]string{
		"apikey":        c.serviceKey,
		"Authorization": "Bearer " + c.serviceKey,
	}

	resp, err := c.http.POSTWithHeaders(ctx, "/auth/v1/invite", InviteRequest{
		Email:      email,
		RedirectTo: redirectTo,
	}, headers)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth platform returned status %d", resp.StatusCode)
	}

	var user InvitedUser
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, fmt.Errorf("failed to decode invite response: %w", err)
	}

	return &user, nil
}
