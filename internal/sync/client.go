// Package sync keeps the local workout state and the remote user-data
// document in agreement: a bootstrap fetch on sign-in and debounced pushes
// after local mutations.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

// Client is the remote document API used by the Coordinator. Fetch returns
// (nil, nil) when the user has no remote document yet.
type Client interface {
	Fetch(ctx context.Context) (*models.UserData, error)
	Save(ctx context.Context, data models.UserData) error
}

// HTTPClient talks to the user-data endpoint with bearer-token auth.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient builds a client for a server base URL such as
/// "https://gym.example.com".
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1/user-data", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Fetch downloads the user's document. A 204 means the user has never synced
// and is reported as a nil document.
func (c *HTTPClient) Fetch(ctx context.Context) (*models.UserData, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("building fetch request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching user data: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil, nil
	case http.StatusOK:
		var data models.UserData
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("decoding user data: %w", err)
		}
		return &data, nil
	default:
		return nil, fmt.Errorf("fetching user data: server returned %s", resp.Status)
	}
}

// Save uploads the document, stamping UpdatedAt with the current time in unix
// milliseconds.
func (c *HTTPClient) Save(ctx context.Context, data models.UserData) error {
	data.UpdatedAt = time.Now().UnixMilli()
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding user data: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("building save request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("saving user data: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("saving user data: server returned %s", resp.Status)
	}
	return nil
}
