package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/itchan-dev/simpleboard/shared/api"
)

// Login exchanges the admin credential for a bearer token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp api.LoginResponse
	if err := c.call(ctx, http.MethodPost, "/v1/auth/login", api.LoginRequest{Email: email, Password: password}, http.StatusOK, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return resp.Token, nil
}
