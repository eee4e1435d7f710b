// Package apiclient is the client's gateway to the board backend: one HTTP
// round trip per operation plus the websocket change feed.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
	internal_errors "github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

type IdentitySource interface {
	Identity() domain.Identity
}

// TokenSource yields the admin bearer token, empty when there is no session.
type TokenSource interface {
	Token() string
}

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
	Identity   IdentitySource
	Admin      TokenSource
	Dialer     *websocket.Dialer
	Retryer    Retryer
}

func New(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Timeout: timeout},
		Dialer:     websocket.DefaultDialer,
		Retryer:    NewExponentialBackoffRetryer(),
	}
}

// do is the single helper for making API requests. It attaches the identity
// header and the admin token when present.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req.Header)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		logger.Log.Debug("backend request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, internal_errors.Network("backend unavailable: "+err.Error()))
	}
	return resp, nil
}

func (c *APIClient) authorize(h http.Header) {
	if c.Identity != nil {
		if id := c.Identity.Identity(); id != "" {
			h.Set(api.IdentityHeader, id)
		}
	}
	if c.Admin != nil {
		if token := c.Admin.Token(); token != "" {
			h.Set("Authorization", "Bearer "+token)
		}
	}
}

// call sends in as JSON (if non-nil), expects status want and decodes the
// response into out (if non-nil).
func (c *APIClient) call(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, want, out)
}

func decodeResponse(resp *http.Response, want int, out any) error {
	if resp.StatusCode != want {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := utils.Decode(resp.Body, out); err != nil {
		return fmt.Errorf("cannot decode %s response: %w", resp.Request.URL.Path, err)
	}
	return nil
}

// statusError turns a non-success response into an ErrorWithStatusCode so
// callers can match it with errors.Is against the shared kinds.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
}
