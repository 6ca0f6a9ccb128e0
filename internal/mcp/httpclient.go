package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

// HTTPClient implements DataSource by calling the gym tracker REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// document lives on the server.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL with a
// bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UserData fetches the caller's document. A 204 from the server means the
// user never synced; that surfaces as an empty document rather than an error.
func (c *HTTPClient) UserData(ctx context.Context) (models.UserData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/user-data", nil)
	if err != nil {
		return models.UserData{}, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.UserData{}, fmt.Errorf("httpclient: user-data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return models.UserData{SchemaVersion: models.SchemaVersion}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.UserData{}, fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.UserData{}, fmt.Errorf("httpclient: user-data returned %d: %s", resp.StatusCode, body)
	}

	var data models.UserData
	if err := json.Unmarshal(body, &data); err != nil {
		return models.UserData{}, fmt.Errorf("httpclient: decode user data: %w", err)
	}
	return data, nil
}
