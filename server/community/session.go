package community

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email string, password string) (*User, error) {
	var resp loginResp
	if err := c.doPublic(ctx, http.MethodPost, "/auth/login", loginReq{
		Email:    email,
		Password: password,
	}, &resp); err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, errors.New("login response did not contain a token")
	}

	if err := c.store.Set(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}

	return &resp.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// GetMe returns the logged in user. IsMaster drives which tabs are visible.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.Do(ctx, http.MethodGet, "/sca/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
