package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type addressPayload struct {
	Address string `json:"address"`
}

// Login opens a session; the cookie it sets is kept in the jar and attached
// to every later call.
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/login", nil, loginRequest{
		Username: username,
		Password: password,
	}, nil)
	return err
}

func (c *Client) Address(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/user/address", nil, nil, nil)
	if err != nil {
		return "", err
	}
	var payload addressPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode address: %w", err)
	}
	return payload.Address, nil
}

func (c *Client) SetAddress(ctx context.Context, address string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/user/address", nil, addressPayload{Address: address}, nil)
	return err
}
