package commerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

// Auth covers the account endpoints. Errors are apperr values whose message
// is the API's flattened error text.
type Auth interface {
	Login(ctx context.Context, creds model.Credentials) (model.Tokens, error)
	Register(ctx context.Context, reg model.Registration) error
	RequestPasswordReset(ctx context.Context, req model.PasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, req model.PasswordResetConfirm) error
	Me(ctx context.Context, token string) (model.User, error)
	UpdateMe(ctx context.Context, token string, upd model.ProfileUpdate) (model.User, error)
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.Tokens, error) {
	var tokens model.Tokens
	if err := c.doJSON(ctx, request{
		op:     "Login",
		method: http.MethodPost,
		path:   "/api/auth/login/",
		body:   creds,
	}, &tokens); err != nil {
		return model.Tokens{}, fmt.Errorf("login: %w", err)
	}

	if tokens.Access == "" {
		return model.Tokens{}, apperr.UpstreamErr.WrapParent(fmt.Errorf("login: empty access token"))
	}
	return tokens, nil
}

func (c *Client) Register(ctx context.Context, reg model.Registration) error {
	if err := c.doJSON(ctx, request{
		op:     "Register",
		method: http.MethodPost,
		path:   "/api/auth/register/",
		body:   reg,
	}, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, req model.PasswordResetRequest) error {
	if err := c.doJSON(ctx, request{
		op:     "RequestPasswordReset",
		method: http.MethodPost,
		path:   "/api/auth/password/reset/",
		body:   req,
	}, nil); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, req model.PasswordResetConfirm) error {
	if err := c.doJSON(ctx, request{
		op:     "ConfirmPasswordReset",
		method: http.MethodPost,
		path:   "/api/auth/password/reset/confirm/",
		body:   req,
	}, nil); err != nil {
		return fmt.Errorf("confirm password reset: %w", err)
	}
	return nil
}

func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, apperr.UnauthorizedErr
	}

	var user model.User
	if err := c.doJSON(ctx, request{
		op:     "Me",
		method: http.MethodGet,
		path:   "/api/auth/me/",
		token:  token,
	}, &user); err != nil {
		return model.User{}, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}

func (c *Client) UpdateMe(ctx context.Context, token string, upd model.ProfileUpdate) (model.User, error) {
	if token == "" {
		return model.User{}, apperr.UnauthorizedErr
	}

	var user model.User
	if err := c.doJSON(ctx, request{
		op:     "UpdateMe",
		method: http.MethodPatch,
		path:   "/api/auth/me/",
		body:   upd,
		token:  token,
	}, &user); err != nil {
		return model.User{}, fmt.Errorf("update current user: %w", err)
	}
	return user, nil
}
