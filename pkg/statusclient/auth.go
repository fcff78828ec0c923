package statusclient

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Login drives sess through authenticating to authenticated, or back to
// anonymous when the credentials are refused.
func (c *Client) Login(ctx context.Context, sess *Session, email, password string) (Token, error) {
	if err := sess.BeginLogin(); err != nil {
		return Token{}, err
	}

	tok, err := do[Token](ctx, c, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		sess.FailLogin()
		return Token{}, err
	}

	if err := sess.Authenticate(tok.AccessToken, time.Duration(tok.ExpiresIn)*time.Second); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// LoginForm uses the form-encoded token endpoint.
func (c *Client) LoginForm(ctx context.Context, sess *Session, username, password string) (Token, error) {
	if err := sess.BeginLogin(); err != nil {
		return Token{}, err
	}

	tok, err := do[Token](ctx, c, call{
		method: http.MethodPost,
		path:   "/auth/token",
		form:   url.Values{"username": {username}, "password": {password}},
	})
	if err != nil {
		sess.FailLogin()
		return Token{}, err
	}

	if err := sess.Authenticate(tok.AccessToken, time.Duration(tok.ExpiresIn)*time.Second); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (c *Client) Register(ctx context.Context, req RegisterUserRequest) (Profile, error) {
	return do[Profile](ctx, c, call{method: http.MethodPost, path: "/auth/register", body: req})
}

func (c *Client) Me(ctx context.Context, sess *Session) (Profile, error) {
	return do[Profile](ctx, c, call{method: http.MethodGet, path: "/auth/me", session: sess})
}
