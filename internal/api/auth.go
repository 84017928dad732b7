package api

import (
	"context"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// LoginResult is the /auth/login response: a bearer token plus the identity
// the session cookies are built from.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	in := map[string]string{"email": email, "password": password}
	if err := c.request(ctx, "POST", "/auth/login", in, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// CheckEmail asks the upstream to send a verification code to the address.
func (c *Client) CheckEmail(ctx context.Context, email string) error {
	return c.request(ctx, "POST", "/users/check", map[string]string{"email": email}, nil)
}

// VerifyCode submits the emailed code.
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	return c.request(ctx, "POST", "/users/code/"+email, map[string]string{"code": code}, nil)
}

// ResetPassword sets a new password after a verified code.
func (c *Client) ResetPassword(ctx context.Context, email, password string) error {
	in := map[string]string{"password": password}
	return c.request(ctx, "PUT", "/users/resetPassword/"+email, in, nil)
}
